// Command edqm2fhir converts the EDQM Standard Terms into FHIR R4 resources.
package main

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/cli"

func main() {
	cli.Execute()
}
