package services

import "hunter-system/models"

type lootCell struct {
	names        []string
	descriptions []string
}

// lootTable holds the name and description pools per item type and rarity.
var lootTable = map[models.ItemType]map[models.Rarity]lootCell{
	models.ItemTypeWeapon: {
		models.RarityCommon: {
			names:        []string{"Rusted Shortsword", "Oak Quarterstaff", "Guild Issue Knife"},
			descriptions: []string{"Handed out at the guild desk to every new registrant.", "Heavy, blunt, and honest about both.", "The grip is wrapped in tape from a previous owner."},
		},
		models.RarityRare: {
			names:        []string{"Tempered Longsword", "Runed Crossbow", "Gatekeeper's Spear"},
			descriptions: []string{"Forged from ore mined inside a C-rank gate.", "Faint runes steady the aim of whoever holds it.", "Balanced for long watches at the edge of a dungeon."},
		},
		models.RarityEpic: {
			names:        []string{"Stormcaller Glaive", "Ember Twin Blades", "Nightfall Recurve"},
			descriptions: []string{"Static crackles along the blade before every strike.", "Two halves of one flame that never quite go out.", "Arrows loosed from it vanish until they land."},
		},
		models.RarityLegendary: {
			names:        []string{"Fang of the Frost Queen", "Spire of the First Mage", "Hollow King's Cleaver"},
			descriptions: []string{"Cold enough to freeze the breath of anyone nearby.", "Carved from the tower that stood before the gates opened.", "It remembers every dungeon boss it has ended."},
		},
		models.RarityMythic: {
			names:        []string{"Edge of the Last Gate", "Starforged Judgement", "Abyssal Monarch's Blade"},
			descriptions: []string{"Said to have sealed the final gate on its own.", "Its weight changes with the worth of the wielder.", "Shadows kneel when it is drawn."},
		},
	},
	models.ItemTypeArmor: {
		models.RarityCommon: {
			names:        []string{"Padded Jerkin", "Scuffed Greaves", "Apprentice Hood"},
			descriptions: []string{"Keeps the wind out and little else.", "Dented in the same place twice.", "Standard gear for hunters still waiting on their first raid."},
		},
		models.RarityRare: {
			names:        []string{"Chainweave Hauberk", "Warden's Pauldrons", "Silkguard Robe"},
			descriptions: []string{"Each link was checked by a guild smith.", "Marked with the crest of a retired raid leader.", "Light enough to cast in, sturdy enough to survive in."},
		},
		models.RarityEpic: {
			names:        []string{"Wyrmhide Cuirass", "Veil of Quiet Steps", "Ironbark Bulwark"},
			descriptions: []string{"Scales that still shift as if the wyrm were breathing.", "Muffles every footfall to a whisper.", "Grown, not forged, from a tree inside an A-rank gate."},
		},
		models.RarityLegendary: {
			names:        []string{"Aegis of the Unbroken", "Mantle of Falling Stars", "Carapace of the Ant King"},
			descriptions: []string{"No blade has ever found a seam in it.", "Woven from light that fell during the first awakening.", "Harvested from a boss that nearly overran a city."},
		},
		models.RarityMythic: {
			names:        []string{"Raiment of the Sovereign", "Shroud of Endless Night", "Bastion of the Ruler"},
			descriptions: []string{"Worn only by those the System itself acknowledges.", "Darkness pools around it like water.", "The wearer cannot be moved unless they choose to be."},
		},
	},
	models.ItemTypeAccessory: {
		models.RarityCommon: {
			names:        []string{"Copper Band", "Knotted Cord Bracelet", "Tin Pendant"},
			descriptions: []string{"Turns the finger green after a long day.", "A charm from a street stall outside the guild.", "Engraved with initials nobody remembers."},
		},
		models.RarityRare: {
			names:        []string{"Moonstone Ring", "Charm of Swift Hands", "Guildmaster's Token"},
			descriptions: []string{"Glows faintly whenever mana is near.", "Reload and reach feel a beat quicker.", "Opens a few doors that used to stay closed."},
		},
		models.RarityEpic: {
			names:        []string{"Circlet of Clarity", "Bloodstone Choker", "Band of Echoes"},
			descriptions: []string{"Thoughts line up neatly while it is worn.", "Pulses in time with the wearer's heart.", "Repeats the last spell cast, only softer."},
		},
		models.RarityLegendary: {
			names:        []string{"Seal of the Gatebreaker", "Hourglass Locket", "Eye of the Leviathan"},
			descriptions: []string{"Every gate feels smaller with this on.", "Sand inside flows backward during a fight.", "Sees through illusions as if they were glass."},
		},
		models.RarityMythic: {
			names:        []string{"Ring of the Absolute", "Crown Shard of the Monarch", "Heart of the System"},
			descriptions: []string{"Reality bends a little around whoever wears it.", "A fragment of a crown that ruled the shadows.", "It hums with the same voice that hands out quests."},
		},
	},
	models.ItemTypeConsumable: {
		models.RarityCommon: {
			names:        []string{"Minor Healing Draught", "Trail Rations", "Cup of Bitter Tea"},
			descriptions: []string{"Tastes like mint and copper.", "Dry, filling, and entirely forgettable.", "Wakes you up whether you wanted it or not."},
		},
		models.RarityRare: {
			names:        []string{"Focus Tincture", "Stoneskin Salve", "Mana Shard"},
			descriptions: []string{"Sharpens attention for about an hour.", "Rub it in and bruises stop mattering for a while.", "Crush it to refill a little mana."},
		},
		models.RarityEpic: {
			names:        []string{"Phoenix Feather Tonic", "Scroll of Haste", "Experience Candle"},
			descriptions: []string{"Warm all the way down, and wounds close behind it.", "One reading doubles your pace for a short time.", "Burns while you work and makes lessons stick."},
		},
		models.RarityLegendary: {
			names:        []string{"Gate Key of Silence", "Tome of Forgotten Skills", "Reawakening Crystal"},
			descriptions: []string{"Opens a private dungeon for one hunter.", "Reading it teaches a skill no living hunter knows.", "Said to raise a hunter's rank by touching it."},
		},
		models.RarityMythic: {
			names:        []string{"Elixir of the Monarch", "Fragment of the Rift", "System's Favor"},
			descriptions: []string{"One sip and the limits you knew are gone.", "A piece of space that was never meant to be carried.", "A blessing granted once per lifetime."},
		},
	},
}
