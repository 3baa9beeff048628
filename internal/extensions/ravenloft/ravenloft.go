// Package ravenloft contributes the Castle Ravenloft skills. Import it for its side effect of
// registering the "ravenloft" catalog extension.
package ravenloft

import (
	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/document"
)

// Name is the extension path game documents use to opt in.
const Name = "ravenloft"

// Skills are the hero skills of Castle Ravenloft.
var Skills = []document.Skill{
	{
		Name: "Aid",
		Description: "You know healing techniques. At the end of your hero phase, if you did not attack, one other hero on " +
			"your tile regains 1 hit point.",
	},
	{
		Name:        "Critical Strike",
		Description: "If you roll a natural 20 on any attack roll, you gain a +1 damage bonus on the attack.",
	},
	{
		Name: "Defender",
		Description: "You protect your friends. While another hero is on the same tile as you, he or she gains a +1 bonus to " +
			"armor class.",
	},
	{
		Name: "Lore",
		Description: "You know the secrets of monsters. While another hero is on the same tile as you, he or she gains a +1 " +
			"bonus to attack rolls.",
	},
	{
		Name: "Scout",
		Description: "You are a master explorer. During your Exploration Phase, you can explore one unexplored edge on " +
			"your tile, even if you aren't adjacent to it.",
	},
	{
		Name:        "Squeezing",
		Description: "Can be placed over walls, but the center square that the miniature is on must be open.",
	},
	{
		Name:        "Trap Expert",
		Description: "You are an expert at finding and disabling Traps. You gain a +5 bonus to rolls to disable traps.",
	},
}

func init() {
	catalog.RegisterExtension(Name, catalog.Extension{Skills: Skills})
}
