package assets

// LevelLore holds atmospheric one-liners per map name. One is shown in the
// viewer's status bar, picked by seed.
var LevelLore = map[string][]string{
	"The Town of Bracketon": {
		"Gulls argue over the piers. The tide smells of tar and old rope.",
		"The town wall keeps out the wolves. Mostly.",
		"Someone has chalked 'DON'T GO DOWN' on the cellar door of the pub.",
	},
	"Into the Woods": {
		"The yellow brick road was laid by someone with more paint than sense.",
		"Branches close overhead. The light turns green and quiet.",
		"Something has been gnawing on the waymarkers.",
	},
	"Abandoned Barracks": {
		"Bunks in neat rows. Nobody has slept in them for a long time.",
		"A duty roster is nailed to a door. Every name has been crossed out.",
		"The armoury was emptied in a hurry.",
	},
	"Old Cellars": {
		"Wine racks, long since drunk dry.",
		"The air is cold and the walls sweat.",
		"Scratches on the floor lead toward the far wall and stop.",
	},
	"Limestone Caverns": {
		"Water drips somewhere in the dark, patient as a clock.",
		"The stone here was carved by nothing but time.",
		"Your torchlight catches glittering seams in the rock.",
	},
	"Dwarven Fortress": {
		"The halls were cut straight and true. Then something burrowed through them.",
		"A scorched shield lies by the gate. The dwarves did not leave willingly.",
		"The smell of sulphur grows stronger the deeper you go.",
	},
}

// LoreFor picks a line for a map name using seed. It returns "" when the
// name has no lore.
func LoreFor(name string, seed int64) string {
	lines := LevelLore[name]
	if len(lines) == 0 {
		return ""
	}
	i := seed % int64(len(lines))
	if i < 0 {
		i = -i
	}
	return lines[i]
}
