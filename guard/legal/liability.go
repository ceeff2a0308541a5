package legal

import (
	"fmt"
	"math"
)

// LiabilityGuard recomputes liability caps expressed as a percentage of the
// contract value.
type LiabilityGuard struct{}

// capTolerance absorbs rounding to whole currency units in the claimed cap.
const capTolerance = 0.01

// VerifyCap checks claimedCap against contractValue * capPercentage / 100.
func (g *LiabilityGuard) VerifyCap(contractValue, capPercentage, claimedCap float64) Result {
	if contractValue <= 0 {
		return Result{Message: fmt.Sprintf("contract_value must be positive, got %v", contractValue)}
	}
	if capPercentage < 0 || capPercentage > 100 {
		return Result{Message: fmt.Sprintf("cap_percentage must be between 0 and 100, got %v", capPercentage)}
	}
	expected := contractValue * capPercentage / 100
	if math.Abs(expected-claimedCap) < capTolerance {
		return Result{Verified: true, Message: fmt.Sprintf("Liability cap confirmed: %v%% of %v = %v", capPercentage, contractValue, expected)}
	}
	return Result{Message: fmt.Sprintf("Liability cap mismatch: %v%% of %v = %v, not %v", capPercentage, contractValue, expected, claimedCap)}
}
