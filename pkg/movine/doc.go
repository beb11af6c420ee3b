// Package movine ties the migration engine together for each CLI verb: it loads
// the local and database-recorded migration sets, matches and classifies them,
// builds the plan for the requested operation, and either renders the plan or
// hands it to the adaptor for execution.
package movine
