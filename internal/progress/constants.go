package progress

// Accounting constants
const (
	// DarkElixirRatio converts Dark Elixir into Elixir-equivalent weighted units
	DarkElixirRatio = 150

	// Ore scarcity weights used when equipment costs are folded into one total
	ShinyOreWeight  = 1
	GlowyOreWeight  = 8
	StarryOreWeight = 100

	// AbsorptionTier is the Town Hall level from which Eagle Artillery is
	// credited as fully upgraded (it becomes part of the hall weapon)
	AbsorptionTier = 17

	// WeaponTier is the first Town Hall level carrying an upgradeable weapon.
	// Weapon level 1 ships with the hall upgrade itself.
	WeaponTier = 17

	// Minimum hall tiers before pets and guardians are part of progress
	PetMinTier      = 14
	GuardianMinTier = 18
)

// DefaultWallLimits caps how many walls may take a level step when neither
// the config nor the catalog supplies a table
func DefaultWallLimits() map[int]int {
	return map[int]int{19: 125}
}
