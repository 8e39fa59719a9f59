package rbac

import "slices"

// Resolve flattens an editor-form role into the wire form served to clients.
//
// Resolution rules:
//   - Disabled group associations are denied wholesale: their permissions
//     never contribute a grant, whatever their access type.
//   - DENY is absolute. If any enabled association assigns DENY to a
//     permission key, the resolved flag is false even when another enabled
//     association grants the same key.
//   - ALLOW, READ_ONLY and FULL all resolve to allowed=true. The read/write
//     distinction is a UI hint and is intentionally not enforced here.
//
// The result is deterministic: permissions are emitted in first-seen order
// across associations.
func Resolve(role Role) ResolvedRole {
	resolved := ResolvedRole{
		Slug: role.Slug,
		Name: role.Name,
	}

	allowed := make(map[string]bool)
	denied := make(map[string]bool)
	var order []string

	for _, assoc := range role.Groups {
		for _, perm := range assoc.Group.Permissions {
			key := perm.Key()
			if !slices.Contains(order, key) {
				order = append(order, key)
			}

			if !assoc.Enabled {
				continue
			}

			switch {
			case perm.AccessType == AccessDeny:
				denied[key] = true
			case perm.AccessType.Grants():
				allowed[key] = true
			}
		}
	}

	resolved.Permissions = make([]Permission, 0, len(order))
	for _, key := range order {
		resource, action := splitKey(key)
		resolved.Permissions = append(resolved.Permissions, Permission{
			Resource: resource,
			Action:   action,
			Allowed:  allowed[key] && !denied[key],
		})
	}

	return resolved
}

// splitKey splits a "resource:action" key back into its parts.
// Only the first separator is significant; actions may not contain one.
func splitKey(key string) (resource, action string) {
	for i := 0; i < len(key); i++ {
		if key[i] == PermissionSeparator[0] {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
