package notification

// RecipientRule selects a notification's audience. Build one with AllUsers,
// SpecificUsers or PackageSubscribers.
type RecipientRule struct {
	kind      RecipientType
	userIDs   []int64
	packageID int64
}

func AllUsers() RecipientRule {
	return RecipientRule{kind: RecipientAll}
}

// SpecificUsers targets exactly ids; duplicates are collapsed.
func SpecificUsers(ids ...int64) RecipientRule {
	return RecipientRule{kind: RecipientSpecificUsers, userIDs: ids}
}

func PackageSubscribers(packageID int64) RecipientRule {
	return RecipientRule{kind: RecipientPackageSubscribers, packageID: packageID}
}

func (r RecipientRule) Kind() RecipientType {
	return r.kind
}

func (r RecipientRule) validate() error {
	if !r.kind.Valid() {
		return ErrInvalidRecipientType
	}
	switch r.kind {
	case RecipientAll:
		if len(r.userIDs) > 0 || r.packageID != 0 {
			return ErrRuleMismatch
		}
	case RecipientSpecificUsers:
		if r.packageID != 0 {
			return ErrRuleMismatch
		}
		if len(r.userIDs) == 0 {
			return ErrNoUsers
		}
		for _, id := range r.userIDs {
			if id <= 0 {
				return ErrInvalidUserID
			}
		}
	case RecipientPackageSubscribers:
		if len(r.userIDs) > 0 {
			return ErrRuleMismatch
		}
		if r.packageID <= 0 {
			return ErrPackageRequired
		}
	}
	return nil
}

// uniqueUserIDs returns the explicit ids without duplicates, first-seen order.
func (r RecipientRule) uniqueUserIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.userIDs))
	out := make([]int64, 0, len(r.userIDs))
	for _, id := range r.userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
