package hermes

import "strconv"

const (
	SubjectColonyTick = "wardrobe.colony.tick"

	StreamName   = "WARDROBE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func outfitSubject(outfitID int, event string) string {
	return "wardrobe.outfit." + strconv.Itoa(outfitID) + "." + event
}

// Outfit lifecycle subjects
func SubjectOutfitCreated(outfitID int) string { return outfitSubject(outfitID, "created") }
func SubjectOutfitUpdated(outfitID int) string { return outfitSubject(outfitID, "updated") }
func SubjectOutfitDeleted(outfitID int) string { return outfitSubject(outfitID, "deleted") }
func SubjectPriorityReset(outfitID int) string { return outfitSubject(outfitID, "priority.reset") }
