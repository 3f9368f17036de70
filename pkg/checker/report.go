package checker

// Report is the serializable outcome of a check.
type Report struct {
	Name          string `json:"name" yaml:"name" jsonschema:"required,description=Human readable product name"`
	ShortName     string `json:"short_name" yaml:"short_name" jsonschema:"required,description=Identifier of the checker"`
	Beta          bool   `json:"beta" yaml:"beta" jsonschema:"description=Whether the beta release track was checked"`
	LatestVersion string `json:"latest_version,omitempty" yaml:"latest_version,omitempty" jsonschema:"description=Latest available version"`
	LatestURL     string `json:"latest_url,omitempty" yaml:"latest_url,omitempty" jsonschema:"description=Download URL of the latest version"`
	SHA1Hash      string `json:"sha1_hash,omitempty" yaml:"sha1_hash,omitempty" jsonschema:"description=SHA-1 digest of the download,pattern=^[0-9a-f]*$"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty" jsonschema:"description=Failure message when the check did not complete"`
}

type Reports []Report

// NewReport describes the state of c after a load which returned err.
func NewReport(c *Checker, err error) Report {
	report := Report{
		Name:      c.Name(),
		ShortName: c.ShortName(),
		Beta:      c.Beta(),
	}

	if err != nil {
		report.Error = err.Error()
		return report
	}

	if result, ok := c.Result(); ok {
		report.LatestVersion = result.LatestVersion
		report.LatestURL = result.LatestURL
		report.SHA1Hash = result.SHA1Hash
	}

	return report
}
