package enums

// AccountRole identifies what a token bearer is allowed to do.
type AccountRole string

const (
	AccountRoleCustomer AccountRole = "customer"
	AccountRoleAdmin    AccountRole = "admin"
)

func (r AccountRole) IsValid() bool {
	switch r {
	case AccountRoleCustomer, AccountRoleAdmin:
		return true
	}
	return false
}

func (r AccountRole) String() string {
	return string(r)
}
