package app

import "notes/internal/store"

// stateMsg carries a store snapshot delivered through the subscription.
type stateMsg struct {
	state store.State
}

type opKind string

const (
	opInitialize opKind = "initialize"
	opRefresh    opKind = "refresh"
	opSave       opKind = "save"
	opDelete     opKind = "delete"
	opLogout     opKind = "logout"
)

type opDoneMsg struct {
	op  opKind
	err error
}

type loginMsg struct {
	url string
	err error
}

type copiedMsg struct {
	what string
	err  error
}
