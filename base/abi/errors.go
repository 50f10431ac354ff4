package abi

import "errors"

var (
	ErrUnknownEvent  = errors.New("event not in abi")
	ErrTopicMismatch = errors.New("log topic does not match event")
)
