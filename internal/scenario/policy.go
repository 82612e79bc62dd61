package scenario

import (
	"fmt"
	"strings"
)

type Mode int

const (
	// Fixed uses the canonical constants for every component.
	Fixed Mode = iota
	// Random samples the initial state and restrictions from a seeded source.
	Random
	// Override reads values from untyped key/value input.
	Override
)

func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Random:
		return "random"
	case Override:
		return "override"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return Fixed, nil
	case "random", "default_random":
		return Random, nil
	case "override", "user":
		return Override, nil
	}
	return Fixed, fmt.Errorf("unknown scenario mode: %s", s)
}

// Policy decides what happens when a restriction does not exceed its
// initial value.
type Policy int

const (
	// Strict rejects the scenario with a *dynamo.ValidationError.
	Strict Policy = iota
	// AutoCorrect raises the restriction to initial+AutoCorrectMargin.
	AutoCorrect
)

func (p Policy) String() string {
	if p == AutoCorrect {
		return "autocorrect"
	}
	return "strict"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "autocorrect", "auto":
		return AutoCorrect, nil
	}
	return Strict, fmt.Errorf("unknown restriction policy: %s", s)
}
