// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"strings"
	"testing"
)

func TestThresholdCountsCharactersNotBytes(t *testing.T) {
	// 400 three-byte characters: 1200 bytes but under the minimum.
	short := strings.Repeat("文", 400)
	if r := thresholded(short); r.Status != StatusFailed {
		t.Errorf("thresholded(400 chars) = %+v, want failed", r)
	}

	long := strings.Repeat("文", 500)
	if r := thresholded(long); !r.OK() {
		t.Errorf("thresholded(500 chars) = %+v, want success", r)
	}
}
