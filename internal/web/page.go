package web

// indexHTML is the whole UI: transcription (upload or mic) on one tab,
// text-to-speech on the other.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Speechbox</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { font-size: 1.5rem; }
  .tabs button { padding: .5rem 1rem; border: 1px solid #ccc; background: #f5f5f5; cursor: pointer; }
  .tabs button.active { background: #fff; border-bottom-color: #fff; }
  .panel { border: 1px solid #ccc; padding: 1rem; margin-top: -1px; }
  .hidden { display: none; }
  button.action, .speak-btn { background: #4caf50; color: #fff; border: none; border-radius: 5px; padding: 10px; cursor: pointer; }
  textarea, #result { width: 100%; min-height: 6rem; margin-top: .5rem; }
  .msg { margin-top: .75rem; }
  .msg.warn { color: #9a6700; }
  .msg.error { color: #b00020; }
</style>
</head>
<body>
<h1>&#127908; Speechbox</h1>
<p>Transcribe speech from audio files or your microphone, and read text aloud.</p>

<div class="tabs">
  <button id="tab-stt" class="active" onclick="showTab('stt')">Audio Transcription</button>
  <button id="tab-tts" onclick="showTab('tts')">Text-to-Speech</button>
</div>

<div id="panel-stt" class="panel">
  <form id="upload-form">
    <input type="file" name="audio" id="audio-file" accept=".wav,.mp3,.ogg,.m4a">
    <button type="submit" class="action">&#128269; Transcribe Audio</button>
  </form>
  <p><button class="action" onclick="record()">&#127897; Record &amp; Transcribe</button>
     <button class="action" onclick="repeat()">&#128257; Record &amp; Repeat</button></p>
  <textarea id="result" readonly placeholder="Transcribed text appears here"></textarea>
  <div id="stt-msg" class="msg"></div>
</div>

<div id="panel-tts" class="panel hidden">
  <textarea id="tts-input" placeholder="Enter text to speak"></textarea>
  <p><button class="action" onclick="speakLocal()">&#128266; Speak on Server</button></p>
  <div id="snippet"></div>
  <div id="tts-msg" class="msg"></div>
</div>

<script>
function showTab(name) {
  for (const t of ['stt', 'tts']) {
    document.getElementById('tab-' + t).classList.toggle('active', t === name);
    document.getElementById('panel-' + t).classList.toggle('hidden', t !== name);
  }
}

function show(id, resp) {
  const el = document.getElementById(id);
  el.className = 'msg';
  if (resp.warning) { el.classList.add('warn'); el.textContent = resp.warning; }
  else if (resp.error) { el.classList.add('error'); el.textContent = resp.error; }
  else if (resp.word_count) { el.textContent = 'Word count: ' + resp.word_count; }
  else { el.textContent = ''; }
}

async function call(url, opts) {
  const r = await fetch(url, opts);
  return r.json();
}

document.getElementById('upload-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const data = new FormData(e.target);
  const resp = await call('/api/transcribe', { method: 'POST', body: data });
  document.getElementById('result').value = resp.text || '';
  show('stt-msg', resp);
});

async function record() {
  document.getElementById('stt-msg').textContent = 'Recording... speak now!';
  const resp = await call('/api/record', { method: 'POST' });
  document.getElementById('result').value = resp.text || '';
  show('stt-msg', resp);
}

async function repeat() {
  document.getElementById('stt-msg').textContent = 'Recording... speak now!';
  const resp = await call('/api/repeat', { method: 'POST' });
  document.getElementById('result').value = resp.text || '';
  show('stt-msg', resp);
}

async function speakLocal() {
  const text = document.getElementById('tts-input').value;
  const resp = await call('/api/speak', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ text }),
  });
  show('tts-msg', resp);
  refreshSnippet(text);
}

async function refreshSnippet(text) {
  const resp = await call('/api/snippet', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ text }),
  });
  const holder = document.getElementById('snippet');
  holder.innerHTML = resp.snippet || '';
  // innerHTML does not run script tags; re-create them.
  for (const old of holder.querySelectorAll('script')) {
    const s = document.createElement('script');
    s.textContent = old.textContent;
    old.replaceWith(s);
  }
}
</script>
</body>
</html>
`
