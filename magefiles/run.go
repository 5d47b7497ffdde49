//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Replays the default recording through the game.
func (Run) Game() error {
	fmt.Println("Run game...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Replays the default recording in a loop with debug logging, until interrupted.
func (Run) Demo() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/arpuzzle",
		withEnv("ARPUZZLE_LOOP_RECORDING", "true"),
		withEnv("ARPUZZLE_LOG_LEVEL", "debug"),
		withStream(),
	)
	if err != nil {
		return err
	}
	return nil
}
