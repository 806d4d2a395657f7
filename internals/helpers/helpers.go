package helpers

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	sha256 "github.com/minio/sha256-simd"
)

// SerializeSHA256 returns the lowercase hex SHA-256 digest of txt.
func SerializeSHA256(txt string) string {
	return acceleratedSha256(txt)
}

func acceleratedSha256(txt string) string {
	shaWriter := sha256.New()
	shaWriter.Write([]byte(txt))
	digest := hex.EncodeToString(shaWriter.Sum(nil))
	return digest
}

// HasLeadingZeros reports whether hash starts with difficulty '0' characters.
// A difficulty of zero or less is always satisfied.
func HasLeadingZeros(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if len(hash) < difficulty {
		return false
	}
	return strings.Count(hash[:difficulty], "0") == difficulty
}

// FormatHashrate renders hashes per second with a h/s, Kh/s or Mh/s suffix.
func FormatHashrate(hashes uint64, seconds float64) string {
	if seconds <= 0 {
		seconds = 1
	}
	round := func(n float64) float64 {
		return math.Floor(n*100) / 100
	}

	hashrate := float64(hashes) / seconds
	switch {
	case hashrate < 1000:
		return fmt.Sprintf("%.2f h/s", round(hashrate))
	case hashrate < 1000*1000:
		return fmt.Sprintf("%.2f Kh/s", round(hashrate/1000))
	default:
		return fmt.Sprintf("%.2f Mh/s", round(hashrate/1000/1000))
	}
}

// GenerateMerkleRoot hashes every leaf and folds the digests pairwise until one
// remains. An odd node is paired with itself. No leaves yield "".
func GenerateMerkleRoot(leaves []string) string {
	hashes := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		hashes = append(hashes, SerializeSHA256(leaf))
	}

	var innerRecurse func(hsh []string) string

	innerRecurse = func(hsh []string) string {
		parents := make([]string, 0, (len(hsh)+1)/2)
		i := 0
		for i < len(hsh) {
			l := hsh[i]
			r := l
			if i+1 < len(hsh) {
				r = hsh[i+1]
			}
			parents = append(parents, SerializeSHA256(l+r))
			i += 2
		}
		if len(parents) > 1 {
			return innerRecurse(parents)
		}
		return parents[0]
	}

	if len(hashes) > 0 {
		return innerRecurse(hashes)
	}
	return ""
}
