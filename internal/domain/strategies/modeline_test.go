package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelineLanguage(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"# -*- mode: ruby; coding: utf-8 -*-", "ruby"},
		{"/* -*- C++ -*- */", "C++"},
		{";; -*- Mode: Emacs-Lisp -*-", "Emacs-Lisp"},
		{"# -*- coding: utf-8 -*-", ""},
		{"# vim: set ft=python :", "python"},
		{"// vim: filetype=javascript", "javascript"},
		{"vi: syntax=sh", "sh"},
		{"# vim:ts=4:sw=4:ft=make", "make"},
		{"# vim: ts=4 sw=4", ""},
		{"plain text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, modelineLanguage(tt.line))
		})
	}
}

func TestModelineMatcher(t *testing.T) {
	match := modelineMatcher(defaultTable(t))

	assert.Equal(t, "ruby-icon", className(match("# -*- ruby -*-", nil)))
	assert.Equal(t, "python-icon", className(match("# vim: set ft=python :", nil)))
	assert.Equal(t, "terminal-icon", className(match("# vim: ft=sh", nil)))
	assert.Equal(t, "gnu-icon", className(match("#!/usr/bin/env make -f", []byte("#!/usr/bin/env make -f\n# vim: ft=make\n"))))
	assert.Nil(t, match("nothing here", nil))
}
