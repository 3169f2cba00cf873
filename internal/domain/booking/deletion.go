package booking

// Policy is the action taken on dependent rows when their parent is deleted.
type Policy string

const (
	Cascade Policy = "CASCADE"
	Protect Policy = "PROTECT"
)

type Relation struct {
	Parent string
	Child  string
	Policy Policy
}

// DeletionPolicies lists every parent/child relation of the schema. The
// repository delete operations and the foreign key constraints follow it.
var DeletionPolicies = []Relation{
	{Parent: "account", Child: "user_profile", Policy: Cascade},
	{Parent: "account", Child: "business", Policy: Protect},
	{Parent: "account", Child: "appointment", Policy: Protect},
	{Parent: "business", Child: "service", Policy: Cascade},
	{Parent: "business", Child: "availability_slot", Policy: Cascade},
	{Parent: "business", Child: "appointment", Policy: Protect},
	{Parent: "appointment", Child: "appointment_service", Policy: Cascade},
	{Parent: "service", Child: "appointment_service", Policy: Protect},
}

func PolicyFor(parent, child string) (Policy, bool) {
	for _, r := range DeletionPolicies {
		if r.Parent == parent && r.Child == child {
			return r.Policy, true
		}
	}
	return "", false
}
