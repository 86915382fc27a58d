// Package errs defines the coded application errors shared by the bot's
// components.
package errs

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown    = "UNKNOWN"
	CodeConfig     = "CONFIG"
	CodeDelivery   = "DELIVERY"
	CodeSideEffect = "SIDE_EFFECT"
	CodeHandler    = "HANDLER"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if there is none.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// ConfigError is fatal: it aborts startup.
type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string {
	return e.base.Error()
}

func (e *ConfigError) Code() string {
	return e.base.Code()
}

func (e *ConfigError) Unwrap() error {
	return e.base.Unwrap()
}

func NewConfigError(message string, cause error) error {
	return &ConfigError{
		base: Error{
			code:    CodeConfig,
			message: message,
			err:     cause,
		},
	}
}

// DeliveryError wraps a transport failure while sending a reply.
type DeliveryError struct {
	base   Error
	ChatID int64
}

func (e *DeliveryError) Error() string {
	return e.base.Error()
}

func (e *DeliveryError) Code() string {
	return e.base.Code()
}

func (e *DeliveryError) Unwrap() error {
	return e.base.Unwrap()
}

func NewDeliveryError(chatID int64, message string, cause error) error {
	return &DeliveryError{
		base: Error{
			code:    CodeDelivery,
			message: message,
			err:     cause,
		},
		ChatID: chatID,
	}
}

// SideEffectError reports a failed stage of the startup sync.
type SideEffectError struct {
	base  Error
	Stage string
}

func (e *SideEffectError) Error() string {
	return e.base.Error()
}

func (e *SideEffectError) Code() string {
	return e.base.Code()
}

func (e *SideEffectError) Unwrap() error {
	return e.base.Unwrap()
}

func NewSideEffectError(stage, message string, cause error) error {
	return &SideEffectError{
		base: Error{
			code:    CodeSideEffect,
			message: message,
			err:     cause,
		},
		Stage: stage,
	}
}

// HandlerError carries a panic recovered from a command handler.
type HandlerError struct {
	base    Error
	Command string
}

func (e *HandlerError) Error() string {
	return e.base.Error()
}

func (e *HandlerError) Code() string {
	return e.base.Code()
}

func (e *HandlerError) Unwrap() error {
	return e.base.Unwrap()
}

func NewHandlerError(command, message string, cause error) error {
	return &HandlerError{
		base: Error{
			code:    CodeHandler,
			message: message,
			err:     cause,
		},
		Command: command,
	}
}
