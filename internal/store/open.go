package store

import "fmt"

// Open connects to the store selected by driver: "sqlite" opens the file
// at path, "mysql" connects with dsn.
func Open(driver, path, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mysql":
		s, err := NewMySQL(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
