package commands

import (
	"github.com/riversh/riversh/core/vos"
)

// True exits successfully.
func True(p *vos.Proc) int {
	return 0
}

// False exits unsuccessfully.
func False(p *vos.Proc) int {
	return 1
}

var _ vos.ProcessFunc = True
var _ vos.ProcessFunc = False

func init() {
	addBuiltin("true", True)
	addBuiltin("false", False)
}
