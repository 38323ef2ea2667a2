/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:generate mockgen -destination=mock_session.go -package=session github.com/carverauto/hwinventory/pkg/wmi/session Primitive

// Package session guards the per-thread native management session that must
// be active before a query can run.
package session

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/carverauto/hwinventory/pkg/logger"
)

var (
	// ErrSession matches every failure to establish a session.
	ErrSession = errors.New("management session unavailable")
	// ErrUnsupportedPlatform is returned by native primitives on platforms
	// without a management subsystem.
	ErrUnsupportedPlatform = errors.New("native management session is not supported on this platform")
)

// Threading selects the concurrency model of the native session.
type Threading int

const (
	MultiThreaded Threading = iota
	ApartmentThreaded
)

func (t Threading) String() string {
	switch t {
	case MultiThreaded:
		return "multithreaded"
	case ApartmentThreaded:
		return "apartment"
	default:
		return fmt.Sprintf("Threading(%d)", int(t))
	}
}

// Authentication, impersonation and capability values understood by the
// native security call.
const (
	AuthnLevelDefault   uint32 = 0
	ImpLevelImpersonate uint32 = 3
	CapabilitiesNone    uint32 = 0
)

// SecurityPolicy is the process-wide security setting applied when a
// session is established.
type SecurityPolicy struct {
	AuthenticationLevel uint32
	ImpersonationLevel  uint32
	Capabilities        uint32
}

// DefaultSecurity is default authentication, impersonate, no capabilities.
var DefaultSecurity = SecurityPolicy{
	AuthenticationLevel: AuthnLevelDefault,
	ImpersonationLevel:  ImpLevelImpersonate,
	Capabilities:        CapabilitiesNone,
}

// Primitive establishes and tears down the native session of the calling
// thread.
type Primitive interface {
	// Establish initializes the session. A thread that already holds a
	// compatible session must be reported as success.
	Establish(threading Threading, policy SecurityPolicy) error
	// Teardown releases one successful Establish.
	Teardown()
}

// Error reports a failed Acquire.
type Error struct {
	Threading Threading
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to establish %s management session: %v", e.Threading, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrSession, e.Err}
}

// Guard pairs session establishment with teardown on the calling goroutine.
//
// Acquire pins the goroutine to its OS thread until the matching Release, so
// every query issued in between runs on the thread that owns the session.
// A Guard holds no per-call state and may be shared; each goroutine must do
// its own Acquire and Release.
type Guard struct {
	primitive Primitive
	logger    logger.Logger

	lockThread   func()
	unlockThread func()
}

// NewGuard returns a Guard over the given primitive.
func NewGuard(primitive Primitive, log logger.Logger) *Guard {
	return &Guard{
		primitive:    primitive,
		logger:       log,
		lockThread:   runtime.LockOSThread,
		unlockThread: runtime.UnlockOSThread,
	}
}

// Acquire establishes a multithreaded session with DefaultSecurity on the
// calling thread. On failure the thread is unpinned and no teardown is owed.
func (g *Guard) Acquire() error {
	g.lockThread()

	if err := g.primitive.Establish(MultiThreaded, DefaultSecurity); err != nil {
		g.unlockThread()

		g.logger.Debug().Err(err).Msg("Management session establishment failed")

		return &Error{Threading: MultiThreaded, Err: err}
	}

	g.logger.Debug().
		Uint32("thread_id", threadID()).
		Msg("Management session acquired")

	return nil
}

// Release tears down the session taken by a successful Acquire and unpins
// the thread. It must be called exactly once per successful Acquire.
func (g *Guard) Release() {
	g.primitive.Teardown()
	g.unlockThread()

	g.logger.Debug().Msg("Management session released")
}

// Do runs fn inside a session. The session is released on every exit path,
// including a panic in fn, and fn's error is returned unchanged.
func (g *Guard) Do(fn func() error) error {
	if err := g.Acquire(); err != nil {
		return err
	}

	defer g.Release()

	return fn()
}

// Nop is a Primitive for backends that do not need a native session.
type Nop struct{}

func (Nop) Establish(Threading, SecurityPolicy) error { return nil }

func (Nop) Teardown() {}
