/*
 * interfaces.go, part of gosdg.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import "strings"

//Atomer is the basic interface for a molecular graph.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the graph. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package). CError
//implements Unwrap, so both ways of inspecting errors work.

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

//CError is the basic error type of gosdg.
type CError struct {
	msg      string
	deco     []string
	critical bool
	cause    error
}

//NewCError returns a new CError with the given message, wrapping cause, which can be nil.
func NewCError(msg string, cause error, deco ...string) *CError {
	return &CError{msg: msg, cause: cause, deco: deco}
}

//Error implements the error interface.
func (err *CError) Error() string {
	if err.cause != nil {
		return err.msg + ": " + err.cause.Error()
	}
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns true if the error should stop the calling procedure.
func (err *CError) Critical() bool { return err.critical }

//SetCritical marks the error as critical, and returns it.
func (err *CError) SetCritical() *CError {
	err.critical = true
	return err
}

//Unwrap returns the wrapped error, if any.
func (err *CError) Unwrap() error { return err.cause }

//Trace returns the decoration of the error as a single string, innermost call first.
func (err *CError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//if used with a non-chem.Error error, it will return the error unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
