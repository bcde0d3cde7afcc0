//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the game binary.
func (Build) Game() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "libracity", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs all tests.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
