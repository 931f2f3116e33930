package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCommand(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		command string
		rest    []string
	}{
		{"no arguments defaults to install", nil, "install", nil},
		{"explicit subcommand", []string{"check", "-json"}, "check", []string{"-json"}},
		{"leading flag belongs to install", []string{"-yes", "-hour", "3"}, "install", []string{"-yes", "-hour", "3"}},
		{"help word", []string{"help"}, "help", []string{}},
		{"short help flag", []string{"-h"}, "help", []string{}},
		{"long help flag", []string{"--help"}, "help", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			command, rest := resolveCommand(tc.args)
			assert.Equal(t, tc.command, command)
			assert.Equal(t, tc.rest, rest)
		})
	}
}
