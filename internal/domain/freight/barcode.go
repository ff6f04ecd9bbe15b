package freight

import (
	"fmt"
	"math/rand"
	"regexp"
)

// Barcode formats. Pieces on a trip carry a deterministic barcode derived
// from the trip number, the shipment's position on the trip and the piece
// number. Pieces off any trip carry a random temporary barcode.
//
//	S105-002-03   second shipment on trip S105, piece 3
//	TEMP-492018   unassigned piece
const TempBarcodePrefix = "TEMP-"

var assignedBarcodePattern = regexp.MustCompile(`^S\d+-\d{3}-\d{2}$`)

// AllocateBarcode returns the barcode for a piece of a shipment assigned to
// a trip. shipmentSeq is the shipment's 1-based position on the trip.
func AllocateBarcode(tripNumber string, shipmentSeq, pieceNumber int) string {
	return fmt.Sprintf("%s-%03d-%02d", tripNumber, shipmentSeq, pieceNumber)
}

// TempBarcode returns a random temporary barcode for an unassigned piece.
// Collisions are possible and resolved at the store's unique index.
func TempBarcode() string {
	return fmt.Sprintf("%s%06d", TempBarcodePrefix, rand.Intn(1000000))
}

// IsTempBarcode reports whether the barcode is a temporary one
func IsTempBarcode(barcode string) bool {
	return len(barcode) > len(TempBarcodePrefix) && barcode[:len(TempBarcodePrefix)] == TempBarcodePrefix
}

// IsAssignedBarcode reports whether the barcode has the trip-derived form
func IsAssignedBarcode(barcode string) bool {
	return assignedBarcodePattern.MatchString(barcode)
}
