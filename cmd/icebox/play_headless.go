//go:build headless

package main

import (
	"errors"

	"github.com/cwbudde/icebox/dsp/buffer"
)

func play(*buffer.Block, int) error {
	return errors.New("playback is not available in headless builds")
}
