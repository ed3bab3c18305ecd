/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package attribute defines the attribute model shared by the request
// decoding layer, the verification engine, and the admission service.
package attribute

import "sort"

// Operator is the comparison operator attached to an attribute in a
// query-style request. It participates in validation only for select-type
// requests, where some sentinel values are legal only under (in)equality.
type Operator int

// Comparison operators.
const (
	OpDefault Operator = iota
	OpEQ
	OpNE
	OpGE
	OpGT
	OpLE
	OpLT
)

var operatorNames = map[Operator]string{
	OpDefault: "",
	OpEQ:      "=",
	OpNE:      "!=",
	OpGE:      ">=",
	OpGT:      ">",
	OpLE:      "<=",
	OpLT:      "<",
}

// String returns the wire form of the operator.
func (o Operator) String() string { return operatorNames[o] }

// ParseOperator maps a wire form to an Operator. Unknown forms map to
// OpDefault, matching the decoder's permissive behavior.
func ParseOperator(s string) Operator {
	for op, name := range operatorNames {
		if name == s && s != "" {
			return op
		}
	}
	return OpDefault
}

// RequestKind is the batch operation being admitted.
type RequestKind string

// Batch request kinds.
const (
	SubmitJob  RequestKind = "submit-job"
	ModifyJob  RequestKind = "modify-job"
	StatusJob  RequestKind = "status-job"
	SelectJobs RequestKind = "select-jobs"
	SubmitResv RequestKind = "submit-reservation"
	ModifyResv RequestKind = "modify-reservation"
	Manager    RequestKind = "manager"
)

// IsValid reports whether k names a known request kind.
func (k RequestKind) IsValid() bool {
	switch k {
	case SubmitJob, ModifyJob, StatusJob, SelectJobs, SubmitResv, ModifyResv, Manager:
		return true
	}
	return false
}

// ObjectKind is the entity type the attribute belongs to.
type ObjectKind string

// Object kinds.
const (
	ObjectJob    ObjectKind = "job"
	ObjectQueue  ObjectKind = "queue"
	ObjectServer ObjectKind = "server"
	ObjectResv   ObjectKind = "reservation"
	ObjectNode   ObjectKind = "node"
)

// IsValid reports whether k names a known object kind.
func (k ObjectKind) IsValid() bool {
	switch k {
	case ObjectJob, ObjectQueue, ObjectServer, ObjectResv, ObjectNode:
		return true
	}
	return false
}

// Command is the management sub-operation on the object.
type Command string

// Commands.
const (
	CmdCreate Command = "create"
	CmdSet    Command = "set"
	CmdUnset  Command = "unset"
)

// Attribute is one attribute of a batch request. Value may be replaced by
// a verifier with an equivalent expanded or normalized string; the swap
// happens only after the verifier succeeds, so callers never observe a
// partially rewritten value.
type Attribute struct {
	Name     string   `json:"name" yaml:"name"`
	Resource string   `json:"resource,omitempty" yaml:"resource,omitempty"`
	Value    string   `json:"value" yaml:"value"`
	Op       Operator `json:"op,omitempty" yaml:"op,omitempty"`
}

// Kind tags the closed set of verifier dispatch targets. Dispatch is an
// exhaustive switch over Kind rather than a runtime-populated function
// table, so an unhandled tag is a compile-review error, not a nil call.
type Kind int

// Verifier kinds.
const (
	KindUnknown Kind = iota
	KindResource
	KindUserList
	KindAuthorizedUsers
	KindDependList
	KindPath
	KindArrayRange
	KindJobName
	KindCheckpoint
	KindHold
	KindJoinPath
	KindKeepFiles
	KindMailPoints
	KindMailUsers
	KindShellPathList
	KindPriority
	KindSandbox
	KindStageList
	KindCredName
	KindZeroOrPositive
	KindNonZeroPositive
	KindMinLicenses
	KindMaxLicenses
	KindLicenseLinger
	KindManagerACL
	KindQueueType
	KindJobState
	KindSelectSpec
	KindPreemptTargets
)

// Well-known attribute names.
const (
	AttrResourceList   = "Resource_List"
	AttrQueue          = "queue"
	AttrPreemptTargets = "preempt_targets"
	AttrSelect         = "select"
)

// kindByName maps attribute identity to its verifier tag. Unknown names
// are out of scope here; the default policy upstream accepts them.
var kindByName = map[string]Kind{
	AttrResourceList:    KindResource,
	"User_List":         KindUserList,
	"group_list":        KindUserList,
	"Authorized_Users":  KindAuthorizedUsers,
	"Authorized_Groups": KindAuthorizedUsers,
	"depend":            KindDependList,
	"Output_Path":       KindPath,
	"Error_Path":        KindPath,
	"array_indices":     KindArrayRange,
	"Job_Name":          KindJobName,
	"Reserve_Name":      KindJobName,
	"Checkpoint":        KindCheckpoint,
	"Hold_Types":        KindHold,
	"Join_Path":         KindJoinPath,
	"Keep_Files":        KindKeepFiles,
	"Mail_Points":       KindMailPoints,
	"Mail_Users":        KindMailUsers,
	"Shell_Path_List":   KindShellPathList,
	"Priority":          KindPriority,
	"sandbox":           KindSandbox,
	"stagein":           KindStageList,
	"stageout":          KindStageList,
	"cred_name":         KindCredName,
	"rpp_retry":         KindZeroOrPositive,
	"rpp_highwater":     KindNonZeroPositive,
	"license_min":       KindMinLicenses,
	"license_max":       KindMaxLicenses,
	"license_linger":    KindLicenseLinger,
	"managers":          KindManagerACL,
	"operators":         KindManagerACL,
	"queue_type":        KindQueueType,
	"job_state":         KindJobState,
	AttrSelect:          KindSelectSpec,
	AttrPreemptTargets:  KindPreemptTargets,
}

// KindOf maps an attribute name to its verifier kind. Resource-valued
// attributes carrying an explicit resource component dispatch to the
// resource verifier regardless of the base name mapping.
func KindOf(a *Attribute) Kind {
	if a == nil {
		return KindUnknown
	}
	if a.Resource != "" {
		return KindResource
	}
	if k, ok := kindByName[a.Name]; ok {
		return k
	}
	return KindUnknown
}

// Names returns the attribute names the engine dispatches on, for
// diagnostics such as nearest-name suggestions.
func Names() []string {
	names := make([]string, 0, len(kindByName))
	for name := range kindByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
