package version

import (
	"fmt"
)

const (
	Version = "0.3"
)

// Printed by the version command and logged at startup.
var VersionString = fmt.Sprintf("foprops %s (XSL-FO property resolution)", Version)
