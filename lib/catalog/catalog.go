// Package catalog registers the built-in settings and their defaults.
package catalog

import (
	"github.com/qcdb/go-qcdb/lib/options"
	"github.com/qcdb/go-qcdb/lib/options/parsers"
)

// Adder is the registration half of options.Registry.
type Adder interface {
	Add(domain string, opt options.Option) error
}

var (
	memory      options.Validator[int64]   = options.ValidatorFunc[int64](parsers.Memory)
	convergence options.Validator[float64] = options.ValidatorFunc[float64](parsers.Convergence)
	upper       options.Validator[string]  = options.ValidatorFunc[string](parsers.Upper)
	sphcart     options.Validator[bool]    = options.ValidatorFunc[bool](parsers.SphCart)
	positive    options.Validator[int]     = options.ValidatorFunc[int](parsers.PositiveInteger)
	percentage  options.Validator[float64] = options.ValidatorFunc[float64](parsers.Percentage)
)

// QCDB returns a fresh copy of every setting in the QCDB domain.
func QCDB() []options.Option {
	return []options.Option{
		options.MustNewSetting("memory", "700 mb", memory,
			"Total memory allocation in bytes.", false),

		options.MustNewSetting("basis", "", upper,
			"Primary orbital basis set.", false),

		options.MustNewSetting("scf__e_convergence", 1.e-6, convergence,
			"Convergence criterion for SCF energy.", false),

		options.MustNewSetting("scf__d_convergence", 1.e-6, convergence,
			"Convergence criterion for SCF density, defined as the RMS value of the orbital gradient.", false),

		options.MustNewSetting("puream", true, sphcart,
			`Do use pure angular momentum basis functions?
If not explicitly set, the default comes from the basis set.
Cfour Interface: keyword translates into CFOUR_SPHERICAL.`, false),

		options.MustNewSetting("reference", "", upper,
			`Reference wavefunction type.
Cfour Interface: keyword translates into CFOUR_REFERENCE.`, false),

		options.MustNewSetting("scf__reference", "", upper,
			`Reference wavefunction type.
Cfour Interface: keyword translates into CFOUR_REFERENCE.`, false),

		options.MustNewSetting("scf_type", "", upper,
			"What algorithm to use for the SCF computation.", false),

		options.MustNewSetting("scf__scf_type", "", upper,
			"What algorithm to use for the SCF computation.", false),

		options.MustNewSetting("scf__maxiter", 100, positive,
			`Maximum number of iterations.
Cfour Interface: keyword translates into CFOUR_SCF_MAXCYC.`, false),

		options.MustNewSetting("scf__damping_percentage", 0.0, percentage,
			`The amount (percentage) of damping to apply to the early density updates.
0 will result in a full update, 100 will completely stall the update. A value
around 20 (20% of the previous iteration's density mixed into the current
density) can help with oscillatory convergence.`, false),
	}
}

// LoadDefaults registers the whole catalog into reg.
func LoadDefaults(reg Adder) error {
	for _, opt := range QCDB() {
		if err := reg.Add("qcdb", opt); err != nil {
			return err
		}
	}
	return nil
}
