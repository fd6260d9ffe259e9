//go:build !whisper

package doctor

func checkPortAudio() Result {
	return Result{Name: "portaudio", Pass: false, Detail: "mic capture disabled; build with -tags whisper"}
}
