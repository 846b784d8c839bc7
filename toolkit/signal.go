// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package toolkit

// Signal is a synchronous multi-listener notification primitive.
// Listeners run in subscription order. A listener may disconnect itself
// (or any other listener) from inside its handler; emission caches the
// next pointer before invoking a handler, so re-entrant disconnects are
// safe.
type Signal[T any] struct {
	head *Listener[T]
	tail *Listener[T]
}

// Listener is a single subscription to a Signal.
type Listener[T any] struct {
	handler func(T)
	signal  *Signal[T]
	next    *Listener[T]
	prev    *Listener[T]
}

// Connect subscribes fn to the signal and returns the listener handle.
func (s *Signal[T]) Connect(fn func(T)) *Listener[T] {
	l := &Listener[T]{handler: fn, signal: s}
	if s.tail == nil {
		s.head = l
		s.tail = l
	} else {
		l.prev = s.tail
		s.tail.next = l
		s.tail = l
	}
	return l
}

// Disconnect removes the listener from its signal. Calling it twice, or
// on a listener whose signal already dropped it, is a no-op.
func (l *Listener[T]) Disconnect() {
	if l.signal == nil {
		return
	}
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		l.signal.head = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	} else {
		l.signal.tail = l.prev
	}
	l.prev = nil
	l.next = nil
	l.signal = nil
}

// Emit invokes every connected handler with value, in subscription
// order.
func (s *Signal[T]) Emit(value T) {
	l := s.head
	for l != nil {
		next := l.next
		l.handler(value)
		l = next
	}
}

// DisconnectAll drops every listener.
func (s *Signal[T]) DisconnectAll() {
	for s.head != nil {
		s.head.Disconnect()
	}
}
