package web

import "html/template"

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>YouTube Video Summarizer</title>
<style>
body { background: #f4f4f4; font-family: Arial, sans-serif; max-width: 1100px; margin: 0 auto; padding: 24px; }
.title { text-align: center; font-size: 32px; color: #333; font-weight: bold; }
.header { text-align: center; font-size: 20px; color: #666; margin-bottom: 24px; }
input[type=text], textarea { width: 100%; box-sizing: border-box; font-size: 16px; padding: 8px; }
textarea { height: 100px; }
button { background: #4CAF50; color: #fff; padding: 10px 24px; font-size: 16px; border: 0; border-radius: 8px; cursor: pointer; }
button:disabled { opacity: .5; cursor: wait; }
.columns { display: flex; gap: 24px; margin-top: 16px; }
.columns > div { flex: 1; }
.message { padding: 12px; border-radius: 6px; margin: 12px 0; }
.info { background: #e7f1fb; color: #1c4f80; }
.error { background: #fdecea; color: #8a1c13; }
.hidden { display: none; }
iframe { width: 100%; aspect-ratio: 16 / 9; border: 0; margin-top: 16px; }
</style>
</head>
<body>
<div class="title">🎥 AI-Powered YouTube Video Summarizer</div>
<div class="header">{{.AgentName}} &middot; {{.Model}}</div>

<label for="url">Enter YouTube Video URL</label>
<input type="text" id="url" value="{{.DefaultURL}}">
<div id="video-message" class="message hidden"></div>
<div id="video-title"></div>

<div id="video" class="hidden">
  <iframe id="player" allowfullscreen></iframe>

  <label for="query">What insights are you seeking from this video?</label>
  <textarea id="query" placeholder="Ask anything about the video content" title="Provide specific questions or insights you want from the video"></textarea>

  <div class="columns">
    <div>
      <button id="summarize">Summarize Video</button>
      <div id="summarize-message" class="message hidden"></div>
      <div id="summarize-output"></div>
    </div>
    <div>
      <button id="insights" class="hidden">Get Insights</button>
      <div id="insights-message" class="message hidden"></div>
      <div id="insights-output"></div>
    </div>
  </div>
</div>

<script>
(function () {
  var state = { url: "", transcript: "" };
  var $ = function (id) { return document.getElementById(id); };

  function show(id, kind, text) {
    var el = $(id);
    el.className = "message " + kind;
    el.textContent = text;
  }
  function hide(id) { $(id).className = "message hidden"; }

  function post(path, body) {
    return fetch(path, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(body)
    }).then(function (r) { return r.json(); });
  }

  function loadVideo() {
    var url = $("url").value.trim();
    if (url === state.url) { return; }
    state = { url: url, transcript: "" };
    $("video").className = "hidden";
    $("video-title").textContent = "";
    hide("video-message");

    post("/api/video", { url: url }).then(function (data) {
      if (url !== state.url) { return; }
      if (data.info) { show("video-message", "info", data.info); return; }
      if (data.error) { show("video-message", "error", data.error); return; }
      state.transcript = data.transcript;
      $("player").src = data.embed_url;
      if (data.video && data.video.title) {
        $("video-title").textContent = data.video.title + " · " + data.video.channel_title;
      }
      $("video").className = "";
    }).catch(function (e) {
      if (url === state.url) { show("video-message", "error", String(e)); }
    });
  }

  function runAction(name, path, heading) {
    var button = $(name);
    hide(name + "-message");
    $(name + "-output").innerHTML = "";
    button.disabled = true;

    post(path, { url: state.url, query: $("query").value, transcript: state.transcript }).then(function (data) {
      if (data.info) { show(name + "-message", "info", data.info); return; }
      if (data.error) { show(name + "-message", "error", data.error); return; }
      $(name + "-output").innerHTML = "<h3>" + heading + "</h3>" + data.html;
    }).catch(function (e) {
      show(name + "-message", "error", String(e));
    }).then(function () { button.disabled = false; });
  }

  $("url").addEventListener("change", loadVideo);
  $("query").addEventListener("input", function () {
    $("insights").className = $("query").value.trim() ? "" : "hidden";
  });
  $("summarize").addEventListener("click", function () { runAction("summarize", "/api/summarize", "Summary &amp; Insights"); });
  $("insights").addEventListener("click", function () { runAction("insights", "/api/insights", "User-Specific Insights"); });

  loadVideo();
})();
</script>
</body>
</html>
`
