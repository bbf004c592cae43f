package seeder

// Defaults returns the seeders `talentbridge seed` runs. The demo seeder is
// only added when demo is set.
func Defaults(skillsFile string, demo bool) []Seeder {
	out := []Seeder{SkillsSeeder{File: skillsFile}}
	if demo {
		out = append(out, DemoSeeder{})
	}
	return out
}
