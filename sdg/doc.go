/*Package sdg implements a 2D structure diagram generator: it assigns coordinates
to the atoms of a molecular graph so that it can be drawn the way chemists draw it.

A Generator lays out each connected component separately. The largest ring system,
or the longest chain if there are no rings, is placed first, and the rest of the
component grows from it. Ring systems are taken from the template library when
possible, otherwise rings are placed one at a time as regular polygons, fused,
bridged or spiro to the rings already placed. Large single rings are drawn as
"stadiums". Chains are drawn as zig-zags with trans turns, and triple bonds and
cumulated double bonds straight. After the layout, double bonds that got the
wrong configuration are flipped, clashes between atoms are reduced, and the
result is rotated to a conventional orientation.

Components are then tiled in a grid, counter-ions are placed next to the ions
they neutralize, and the brackets of the substructure groups are computed.

	g, err := sdg.New(sdg.DefaultOptions())
	if err != nil {
		...
	}
	if err := g.GenerateCoordinates(mol); err != nil {
		...
	}

Atoms and bonds can be fixed through the options. Fixed atoms keep their
coordinates and the rest of the graph is laid out around them. Reactions are
laid out with GenerateReactionCoordinates.

The thresholds used by the heuristics can be read from a TOML file
(LoadHeuristics). Fatal errors wrap ErrLayout; everything else the generator
can recover from is only logged, at warning level, on the logger of the options.

*/
package sdg
