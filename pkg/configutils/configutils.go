package configutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// ImportKey is the config key that names further files to import while
// resolving a configuration file.
var ImportKey = "imports"

// ResolveAndMergeFile reads the given configuration file, resolves the files
// its imports chain names, and merges everything into the provided viper.
// Imports are merged before their importer so the importer wins on conflicts.
func ResolveAndMergeFile(v *viper.Viper, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return errors.New("configuration file has no extension")
	}

	extSupported := false
	for _, e := range viper.SupportedExts {
		if ext[1:] == e {
			extSupported = true
			break
		}
	}
	if !extSupported {
		return fmt.Errorf("unsupported configuration file extension: %s", ext)
	}

	v.SetConfigType(ext[1:])
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := resolveAllImports(v); err != nil {
		return fmt.Errorf("could not resolve configuration imports: %v", err)
	}

	return nil
}

// resolveImports walks the import graph depth first. The visited set is
// filled pre-order to break circular imports; the configs slice is filled
// post-order so children end up merged before their importers.
func resolveImports(v *viper.Viper, configs *[]string, visited map[string]struct{}) error {
	imports := v.GetStringSlice(ImportKey)
	if len(imports) == 0 {
		return nil
	}

	for _, imp := range imports {
		// empty entries come from "imports:" followed by a bare dash
		if len(imp) == 0 {
			continue
		}

		var path string
		if imp[0] == os.PathSeparator {
			path = filepath.Clean(imp)
		} else {
			// relative imports resolve against the importing file
			dir := filepath.Dir(v.ConfigFileUsed())
			path = filepath.Join(dir, imp)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return err
		}

		if _, ok := visited[path]; ok {
			continue
		}
		visited[path] = struct{}{}

		child := viper.New()
		child.SetConfigFile(path)
		if err := child.ReadInConfig(); err != nil {
			return err
		}

		if err := resolveImports(child, configs, visited); err != nil {
			return err
		}

		*configs = append(*configs, path)
	}

	return nil
}

func resolveAllImports(v *viper.Viper) error {
	configs := []string{}
	visited := make(map[string]struct{})

	if err := resolveImports(v, &configs, visited); err != nil {
		return err
	}

	// the root config merges last so it wins over everything it imported
	configs = append(configs, v.ConfigFileUsed())
	for _, configFilePath := range configs {
		if err := mergeConfigFile(v, configFilePath); err != nil {
			return fmt.Errorf("merging config %s: %w", configFilePath, err)
		}
	}

	return nil
}

func mergeConfigFile(v *viper.Viper, filePath string) error {
	r, err := os.Open(filePath)
	if err != nil {
		return err
	}

	defer func() { _ = r.Close() }()
	return v.MergeConfig(r)
}

// BindEnvsRecursive walks the mapstructure tags of the given struct and binds
// each resulting key path to its environment variable, so that
// viper.Unmarshal sees environment overrides even for keys absent from the
// config file.
func BindEnvsRecursive(v *viper.Viper, iface interface{}, path string) error {
	val := reflect.ValueOf(iface).Elem()
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		fullPath := tag
		if path != "" {
			fullPath = path + "." + tag
		}

		field := val.Field(i)
		if field.Kind() == reflect.Ptr {
			if field.IsNil() && field.Type().Elem().Kind() == reflect.Struct {
				field.Set(reflect.New(field.Type().Elem()))
			}
			field = field.Elem()
		}

		if field.Kind() == reflect.Struct {
			if err := BindEnvsRecursive(v, field.Addr().Interface(), fullPath); err != nil {
				return err
			}
		}

		if err := v.BindEnv(fullPath); err != nil {
			return fmt.Errorf("failed to bind environment variable: %w", err)
		}
	}

	return nil
}
