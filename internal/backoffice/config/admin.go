package config

// AdminConfig описывает учетную запись администратора, создаваемую при
// первом запуске. Регистрация доступна только администраторам, поэтому
// без начальной учетной записи создать первую было бы невозможно.
type AdminConfig struct {
	Email    string `yaml:"email" env:"LEDGER_ADMIN_EMAIL" env-default:"admin@example.com"`
	Username string `yaml:"username" env:"LEDGER_ADMIN_USERNAME" env-default:"admin"`
	Password string `yaml:"password" env:"LEDGER_ADMIN_PASSWORD" env-default:"Admin@123"`
	Disabled bool   `yaml:"disabled" env:"LEDGER_ADMIN_SEED_DISABLED" env-default:"false"`
}
