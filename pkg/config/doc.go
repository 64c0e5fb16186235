/*
Package config manages configuration parsing and validation for matchrc.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	| Parser    | | Parser  | | Parser    |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Loads the matching settings: where sources and choices live, which
  similarity algorithm runs, the acceptance threshold, and how
  destination names are derived
- Validates every value before any command acts on it
- Supports multiple config formats behind one Parser interface

🔄 Flow:
1. Reads the configuration file
2. Picks the parser that can handle the file name
3. Seeds the defaults, then decodes the file over them
4. Validates the result and hands it to the commands

📝 Design Philosophy:
Parsers decode over a default-seeded Config so that absent keys keep
their defaults while explicit zero values survive. Validation runs in
one place and normalizes paths as a side effect; everything downstream
can trust the struct. Saving always writes YAML, whatever format the
file was read in.

🔍 Example:

	cfg, err := config.Load(ctx, ".matchrc.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg.String())
*/
package config
