package codes

// Extras returns the small set of data codes the original Symphony data
// dictionary ships outside the main pipe-delimited table. The CLI merges
// these into the loaded data-code table after the primary file loads.
func Extras() map[string]string {
	return map[string]string{
		"uF": "user_first_name",
		"uL": "user_last_name",
		"uU": "user_prefered_name",
		"P7": "circ_rule",
	}
}
