package server

import (
	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/types"
)

// ComputeUserStatus derives the advisory dashboard status from a stored
// document: how much content exists, how much of it has tuned parameters,
// and whether generation is likely to produce something useful.
func ComputeUserStatus(doc types.Document) *types.UserStatus {
	itemCount := 0
	totalParams := 0
	tweakedParams := 0
	for _, section := range doc.Sections {
		for _, item := range section.Items {
			itemCount++
			totalParams++
			if item.Params.Weight != 1.0 || item.Params.Bias != 0.0 {
				tweakedParams++
			}
		}
	}

	var resumeState types.Level
	switch {
	case itemCount < 4:
		resumeState = types.LevelPoor
	case itemCount < 8:
		resumeState = types.LevelFair
	default:
		resumeState = types.LevelStrong
	}

	// Tweak quality only matters once there is enough content to tune.
	tweakStatus := types.LevelPoor
	if resumeState == types.LevelFair || resumeState == types.LevelStrong {
		switch {
		case totalParams == 0 || tweakedParams == 0:
			tweakStatus = types.LevelPoor
		case tweakedParams > totalParams/2:
			tweakStatus = types.LevelStrong
		default:
			tweakStatus = types.LevelFair
		}
	}

	generateStatus := types.LevelPoor
	switch {
	case resumeState == types.LevelStrong && tweakStatus == types.LevelStrong:
		generateStatus = types.LevelStrong
	case resumeState == types.LevelStrong && tweakStatus == types.LevelFair:
		generateStatus = types.LevelGood
	case resumeState == types.LevelFair && tweakStatus == types.LevelStrong:
		generateStatus = types.LevelGood
	case resumeState == types.LevelFair && tweakStatus == types.LevelFair:
		generateStatus = types.LevelFair
	case resumeState == types.LevelStrong:
		generateStatus = types.LevelGood
	}

	return &types.UserStatus{
		ItemCount:      itemCount,
		ResumeState:    resumeState,
		TweakStatus:    tweakStatus,
		GenerateStatus: generateStatus,
	}
}

// statusForStored computes the advisory status for a raw stored blob.
// Anything invalid counts as an empty document.
func statusForStored(raw []byte) *types.UserStatus {
	doc, _ := document.ValidateOrDefault(raw)
	return ComputeUserStatus(doc)
}
