/*
 * colors.go, part of gosdg.
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

package chemplot

import (
	"image/color"
	"math"
)

//groupColor returns the key-th of steps colors spread over the hue circle,
//skipping the yellows, with value 0.8 and saturation 0.9.
func groupColor(key, steps int) color.RGBA {
	const v, s = 0.8, 0.9
	if steps < 1 {
		steps = 1
	}
	h := float64(key)*260/float64(steps) + 20
	if h < 55 {
		h -= 20
	} else {
		h += 20
	}
	//channel n of the HSV to RGB conversion, n being 5, 3 and 1 for r, g and b.
	channel := func(n float64) uint8 {
		k := math.Mod(n+h/60, 6)
		return uint8(255 * (v - v*s*math.Max(0, math.Min(math.Min(k, 4-k), 1))))
	}
	return color.RGBA{R: channel(5), G: channel(3), B: channel(1), A: 255}
}
