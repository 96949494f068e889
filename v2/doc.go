/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package v2 implements helpers for 2D coordinates, built on gonum's spatial/r2 Vec type.
A Points value represents the cartesian coordinates of a set of atoms in a diagram,
and the free functions implement the handful of angle and vector operations that
the structure diagram generator needs over and over again.

Angles are always in radians, measured counterclockwise from the positive x axis.
*/
package v2
