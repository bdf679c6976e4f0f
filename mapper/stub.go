package mapper

import "fmt"

// Mapper ids 1 (MMC1) and 3 (CNROM) are declared extension points:
// recognized by the iNES header but not yet implemented. Registering
// them here (rather than leaving them out of the registry) means New()
// reports a precise "not implemented" error instead of an "unknown
// id" one, and means adding real support later is a matter of
// replacing one register() call with a mapper struct like nrom, not
// restructuring the registry.
func init() {
	register(1, newUnsupported(1, "MMC1"))
	register(3, newUnsupported(3, "CNROM"))
}

func newUnsupported(id uint8, name string) constructor {
	return func(Geometry) (Mapper, error) {
		return nil, fmt.Errorf("mapper: %s (id %d) is a declared extension point, not yet implemented", name, id)
	}
}
