// Package models exists to keep the chat, message and tool types
// shared by every example in one place
package models
