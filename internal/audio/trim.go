package audio

// webrtc VAD only accepts these rates and frame sizes.

func validVADRate(rate int) bool {
	switch rate {
	case 8000, 16000, 32000, 48000:
		return true
	}
	return false
}

func validVADFrameMS(ms int) bool {
	return ms == 10 || ms == 20 || ms == 30
}

// trimBounds returns the half-open sample range spanning the first through
// last voiced frame. A fully silent input yields (0, 0).
func trimBounds(voiced []bool, frameSamples, total int) (int, int) {
	first, last := -1, -1
	for i, v := range voiced {
		if !v {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return 0, 0
	}
	lo := first * frameSamples
	hi := (last + 1) * frameSamples
	if hi > total {
		hi = total
	}
	return lo, hi
}

func pcm16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}
