package discovery

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/godbus/dbus/v5"

	"led-layout/internal/ctxlog"
)

const (
	mapperService   = "xyz.openbmc_project.ObjectMapper"
	mapperPath      = "/xyz/openbmc_project/object_mapper"
	mapperInterface = "xyz.openbmc_project.ObjectMapper"
	inventoryPath   = "/xyz/openbmc_project/inventory"

	objectManagerInterface = "org.freedesktop.DBus.ObjectManager"
	interfacesAdded        = "InterfacesAdded"
	propertiesGet          = "org.freedesktop.DBus.Properties.Get"

	// The mapper answers a subtree query with no matches with this error.
	resourceNotFound = "xyz.openbmc_project.Common.Error.ResourceNotFound"
)

// DBusSource reads compatible names from the inventory over D-Bus.
type DBusSource struct {
	conn *dbus.Conn
}

var (
	_ CompatibleSource  = (*DBusSource)(nil)
	_ CompatibleWatcher = (*DBusSource)(nil)
)

// NewDBusSource connects to the system bus.
func NewDBusSource() (*DBusSource, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	return &DBusSource{conn: conn}, nil
}

// Close closes the bus connection.
func (s *DBusSource) Close() error {
	return s.conn.Close()
}

// CompatibleNames asks the object mapper for every object implementing the
// Compatible decorator and returns their names, deduplicated, in object
// path order.
func (s *DBusSource) CompatibleNames(ctx context.Context) ([]string, error) {
	var subtree map[string]map[string][]string

	mapper := s.conn.Object(mapperService, mapperPath)

	err := mapper.CallWithContext(ctx, mapperInterface+".GetSubTree", 0,
		"/", int32(0), []string{CompatibleInterface}).Store(&subtree)
	if err != nil {
		var dbusErr dbus.Error
		if errors.As(err, &dbusErr) && dbusErr.Name == resourceNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query object mapper: %w", err)
	}

	var names []string

	for _, objPath := range slices.Sorted(maps.Keys(subtree)) {
		for _, service := range slices.Sorted(maps.Keys(subtree[objPath])) {
			var v dbus.Variant

			err := s.conn.Object(service, dbus.ObjectPath(objPath)).CallWithContext(ctx, propertiesGet, 0,
				CompatibleInterface, CompatibleProperty).Store(&v)
			if err != nil {
				ctxlog.FromContext(ctx).Warn("Failed to read compatible names",
					"service", service, "path", objPath, "error", err)

				continue
			}

			names = appendNames(names, variantNames(v))
		}
	}

	return names, nil
}

// WatchCompatible reports the names carried by InterfacesAdded signals for
// inventory objects gaining the Compatible decorator.
func (s *DBusSource) WatchCompatible(ctx context.Context) (<-chan []string, error) {
	match := []dbus.MatchOption{
		dbus.WithMatchInterface(objectManagerInterface),
		dbus.WithMatchMember(interfacesAdded),
		dbus.WithMatchPathNamespace(inventoryPath),
	}

	if err := s.conn.AddMatchSignalContext(ctx, match...); err != nil {
		return nil, fmt.Errorf("failed to add InterfacesAdded match: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	s.conn.Signal(signals)

	out := make(chan []string)

	go func() {
		defer close(out)
		defer s.conn.RemoveSignal(signals)

		defer func() {
			if err := s.conn.RemoveMatchSignal(match...); err != nil {
				ctxlog.FromContext(ctx).Debug("Failed to remove InterfacesAdded match", "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}

				names := signalNames(sig)
				if len(names) == 0 {
					continue
				}

				select {
				case out <- names:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// signalNames extracts the compatible names from an InterfacesAdded signal,
// whose body is (object path, map[interface]map[property]variant).
func signalNames(sig *dbus.Signal) []string {
	if sig == nil || sig.Name != objectManagerInterface+"."+interfacesAdded || len(sig.Body) < 2 {
		return nil
	}

	ifaces, ok := sig.Body[1].(map[string]map[string]dbus.Variant)
	if !ok {
		return nil
	}

	v, ok := ifaces[CompatibleInterface][CompatibleProperty]
	if !ok {
		return nil
	}

	return variantNames(v)
}

func variantNames(v dbus.Variant) []string {
	names, _ := v.Value().([]string)
	return names
}

func appendNames(dst, names []string) []string {
	for _, n := range names {
		if n != "" && !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}

	return dst
}
