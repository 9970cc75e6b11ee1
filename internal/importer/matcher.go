package importer

// MatchedPair is one audio item paired with its correct image by base name.
// AudioIndex is the position of the audio item in the batch's audio sequence,
// kept so the batch report can preserve input order.
type MatchedPair struct {
	AudioIndex   int
	Audio        UploadedItem
	CorrectImage UploadedItem
}

// UnmatchedAudio describes an audio item with no corresponding image.
// It is reported as a per-item failure, never silently dropped.
type UnmatchedAudio struct {
	AudioIndex int
	Item       UploadedItem
}

// MatchPairs pairs every audio item with the image item sharing its base
// name. The match is case-sensitive and exact; when several images share a
// base name the first one in input order wins. Pure function, no side
// effects.
func MatchPairs(audioItems, imageItems []UploadedItem) ([]MatchedPair, []UnmatchedAudio) {
	imagesByBase := make(map[string]UploadedItem, len(imageItems))
	for _, img := range imageItems {
		if _, ok := imagesByBase[img.BaseName]; !ok {
			imagesByBase[img.BaseName] = img
		}
	}

	var pairs []MatchedPair
	var unmatched []UnmatchedAudio
	for i, audio := range audioItems {
		img, ok := imagesByBase[audio.BaseName]
		if !ok {
			unmatched = append(unmatched, UnmatchedAudio{AudioIndex: i, Item: audio})
			continue
		}
		pairs = append(pairs, MatchedPair{AudioIndex: i, Audio: audio, CorrectImage: img})
	}
	return pairs, unmatched
}
