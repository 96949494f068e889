//Package chemjson implements serializacion and unserialization of
//gosdg molecular graphs and reactions. Its planned use is the communication
//of gosdg with other, independent programs, which can be written in
//languages other than Go, as long as those languages can read and write JSON.
//
//A stream is line-oriented: each molecule starts with a Header record giving
//its name and the number of atom, bond, stereo and substructure group records
//that follow, one JSON object per line. Atom and bond indexes are 0-based
//positions in the molecule. A reaction is a ReactionHeader followed by its
//reactants, agents and products.
//
//chemjson also implements the transmision of options, so an external
//program can transmit data and options for a layout job to a gosdg program
//and later collect the results, for instance, via UNIX pipes.
package chemjson
