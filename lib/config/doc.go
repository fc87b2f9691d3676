// Package config provides application configuration for go-qcdb.
//
// # Configuration File
//
// Configuration is read with viper from $HOME/.go-qcdb/config.yaml, or from
// the file named by CfgFile. A missing default file is not an error; every
// value then comes from Defaults(). A CfgFile that does not exist is.
//
// # User Options
//
// The options section holds end-user settings, grouped by domain:
//
//	verbose: 1
//	strict: true
//	options:
//	  qcdb:
//	    basis: cc-pvdz
//	    scf__maxiter: 200
//	  psi4:
//	    maxiter: 80
//
// ApplyUserOptions turns each entry into a requirement tagged options.TagUser,
// or into a suggestion when strict is false.
// Keywords are keyword suffixes, exactly as for Registry.Require, so "maxiter"
// reaches every setting of the domain ending in MAXITER.
package config
