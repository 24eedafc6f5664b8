package defs

// Well-known stat names referenced by the engine and default tables.
const (
	ArmorRatingSharp                   = "ArmorRating_Sharp"
	ArmorRatingBlunt                   = "ArmorRating_Blunt"
	MeleeDPS                           = "MeleeDPS"
	MeleeHitChance                     = "MeleeHitChance"
	MeleeDodgeChance                   = "MeleeDodgeChance"
	ShootingAccuracyPawn               = "ShootingAccuracyPawn"
	AimingDelayFactor                  = "AimingDelayFactor"
	MoveSpeed                          = "MoveSpeed"
	CarryingCapacity                   = "CarryingCapacity"
	PainShockThreshold                 = "PainShockThreshold"
	NegotiationAbility                 = "NegotiationAbility"
	TradePriceImprovement              = "TradePriceImprovement"
	SocialImpact                       = "SocialImpact"
	TameAnimalChance                   = "TameAnimalChance"
	TrainAnimalChance                  = "TrainAnimalChance"
	MedicalTendSpeed                   = "MedicalTendSpeed"
	MedicalTendQuality                 = "MedicalTendQuality"
	MedicalOperationSpeed              = "MedicalOperationSpeed"
	MedicalSurgerySuccessChance        = "MedicalSurgerySuccessChance"
	UnskilledLaborSpeed                = "UnskilledLaborSpeed"
	DrugSynthesisSpeed                 = "DrugSynthesisSpeed"
	CookSpeed                          = "CookSpeed"
	FoodPoisonChance                   = "FoodPoisonChance"
	DrugCookingSpeed                   = "DrugCookingSpeed"
	ButcheryFleshSpeed                 = "ButcheryFleshSpeed"
	ButcheryMechanoidSpeed             = "ButcheryMechanoidSpeed"
	ButcheryFleshEfficiency            = "ButcheryFleshEfficiency"
	ButcheryMechanoidEfficiency        = "ButcheryMechanoidEfficiency"
	MeleeWeaponDamageMultiplier        = "MeleeWeapon_DamageMultiplier"
	MeleeWeaponCooldownMultiplier      = "MeleeWeapon_CooldownMultiplier"
	AccuracyTouch                      = "AccuracyTouch"
	AccuracyShort                      = "AccuracyShort"
	AccuracyMedium                     = "AccuracyMedium"
	AccuracyLong                       = "AccuracyLong"
	RangedWeaponCooldown               = "RangedWeapon_Cooldown"
	RangedWeaponDamageMultiplier       = "RangedWeapon_DamageMultiplier"
	WorkSpeedGlobal                    = "WorkSpeedGlobal"
	MiningSpeed                        = "MiningSpeed"
	MiningYield                        = "MiningYield"
	SmoothingSpeed                     = "SmoothingSpeed"
	ResearchSpeed                      = "ResearchSpeed"
	AnimalGatherSpeed                  = "AnimalGatherSpeed"
	AnimalGatherYield                  = "AnimalGatherYield"
	PlantWorkSpeed                     = "PlantWorkSpeed"
	PlantHarvestYield                  = "PlantHarvestYield"
	HuntingStealth                     = "HuntingStealth"
	ConstructionSpeed                  = "ConstructionSpeed"
	ConstructSuccessChance             = "ConstructSuccessChance"
	FixBrokenDownBuildingSuccessChance = "FixBrokenDownBuildingSuccessChance"
	SculptingSpeed                     = "SculptingSpeed"
	SmeltingSpeed                      = "SmeltingSpeed"
	SmithingSpeed                      = "SmithingSpeed"
	TailoringSpeed                     = "TailoringSpeed"

	ComfyTemperatureMin                 = "ComfyTemperatureMin"
	ComfyTemperatureMax                 = "ComfyTemperatureMax"
	InsulationCold                      = "Insulation_Cold"
	InsulationHeat                      = "Insulation_Heat"
	StuffEffectMultiplierInsulationCold = "StuffEffectMultiplierInsulation_Cold"
	StuffEffectMultiplierInsulationHeat = "StuffEffectMultiplierInsulation_Heat"
	StuffEffectMultiplierArmor          = "StuffEffectMultiplierArmor"
)

// Well-known work type names.
const (
	Firefighter    = "Firefighter"
	Patient        = "Patient"
	Doctor         = "Doctor"
	PatientBedRest = "PatientBedRest"
	BasicWorker    = "BasicWorker"
	Warden         = "Warden"
	Handling       = "Handling"
	Cooking        = "Cooking"
	Hunting        = "Hunting"
	Construction   = "Construction"
	Growing        = "Growing"
	Mining         = "Mining"
	PlantCutting   = "PlantCutting"
	Smithing       = "Smithing"
	Tailoring      = "Tailoring"
	Art            = "Art"
	Crafting       = "Crafting"
	Hauling        = "Hauling"
	Cleaning       = "Cleaning"
	Research       = "Research"
)
