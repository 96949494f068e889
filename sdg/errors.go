/*
 * errors.go, part of gosdg.
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

package sdg

import (
	"errors"

	chem "github.com/rmera/gosdg"
)

//ErrLayout is the cause of every fatal layout error. Callers can test for it with
//errors.Is, and usually retry without fixed atoms.
var ErrLayout = errors.New("sdg: layout failed")

//LayoutError is a fatal layout error. It implements chem.Error.
type LayoutError struct {
	*chem.CError
}

func newLayoutError(msg string, deco ...string) *LayoutError {
	return &LayoutError{chem.NewCError(msg, ErrLayout, deco...).SetCritical()}
}

//errDecorate decorates err with caller if err is a chem.Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}
