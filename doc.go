/*Package chem is the main package of gosdg. It provides the molecular graph (atoms, bonds,
double bond configurations, substructure groups and reactions) on which the 2D structure
diagram generator of the sdg package works.



	**gosdg Capabilities**


    Assigns 2D coordinates to molecular graphs of any size, including several
	disconnected fragments, so they can be drawn as structure diagrams: rings
	as regular polygons, chains as zig-zags, triple bonds and cumulated double
	bonds straight.

    Lays out fused, bridged and spiro ring systems, using a library of ring
	templates (package templates) for cages and other systems that can't be
	drawn well by placing one ring after another. Large rings are drawn as
	"stadium" shapes instead of regular polygons.

    Keeps the configuration of stereo double bonds, and refines the layout to
	remove clashes between atoms.

    Keeps the coordinates of a user-given set of atoms and bonds, and lays
	out the rest around them.

    Puts the counter-ions of salts next to each other, and tiles the fragments
	of a mixture in a grid.

    Computes the bracket geometry of substructure groups (polymers, multiple
	groups, positional variation).

    Lays out reactions from left to right, optionally aligning the reactants
	to the products through their atom mapping.

    Data can be JSON encoded (package chemjson) so other programs can send
	molecules to a gosdg program and collect the results, for instance through
	UNIX pipes, and layouts can be drawn with gonum/plot (package chemplot).

*/
package chem
