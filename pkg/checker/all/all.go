// Package all registers every vendor checker.
package all

import (
	_ "github.com/kylelaker/updatechecker/pkg/checker/eclipse"
	_ "github.com/kylelaker/updatechecker/pkg/checker/jgrasp"
)
