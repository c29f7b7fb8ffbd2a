package outfit

import (
	"strings"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// maxBundleSize caps how many outfits a bundle may carry.
const maxBundleSize = 3

// FilterByDislikes removes outfits containing any item whose name+color
// (case-insensitive) contains a dislike keyword. The filter is advisory:
// when it would empty a non-empty list, the original list is returned
// instead, truncated to the bundle size.
func FilterByDislikes(outfits []types.OutfitCandidate, keywords []string) []types.OutfitCandidate {
	if len(outfits) == 0 || len(keywords) == 0 {
		return truncate(outfits)
	}

	kept := make([]types.OutfitCandidate, 0, len(outfits))
	for _, outfit := range outfits {
		if !matchesAnyKeyword(outfit, keywords) {
			kept = append(kept, outfit)
		}
	}

	if len(kept) == 0 {
		return truncate(outfits)
	}
	return truncate(kept)
}

func matchesAnyKeyword(outfit types.OutfitCandidate, keywords []string) bool {
	for _, item := range outfit.Items {
		haystack := strings.ToLower(item.Name + item.Color)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(haystack, kw) {
				return true
			}
		}
	}
	return false
}

func truncate(outfits []types.OutfitCandidate) []types.OutfitCandidate {
	if len(outfits) > maxBundleSize {
		return outfits[:maxBundleSize]
	}
	return outfits
}
