package web

import (
	"html/template"
	"strings"
)

// snippetTmpl asks the visitor's browser to speak the text via its own
// speech-synthesis API. The text is interpolated through html/template so
// it is escaped for both the script and markup contexts.
var snippetTmpl = template.Must(template.New("snippet").Parse(`<script>
function speakText() {
  const utterance = new SpeechSynthesisUtterance({{.Text}});
  window.speechSynthesis.speak(utterance);
}
</script>
<button onclick="speakText()" class="speak-btn">&#128266; Speak Text (Browser TTS)</button>`))

// RenderSnippet returns the browser-TTS markup for text.
func RenderSnippet(text string) (string, error) {
	var b strings.Builder
	if err := snippetTmpl.Execute(&b, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return b.String(), nil
}
