package fortiflex

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ProductType is a FortiFlex product family a configuration is created for.
type ProductType struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Parameters []ParameterDef `json:"parameters"`
}

// ParameterDef documents one configurable parameter of a product type.
// Values is a human-readable hint; nothing here is enforced before a
// request is sent, the remote API does the validation.
type ParameterDef struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Values string `json:"values"`
}

// Reference data mirrored from the FortiFlex v2 API documentation.
var productTypes = []ProductType{
	{ID: 1, Name: "FGT_VM_Bundle", Title: "FortiGate Virtual Machine - Service Bundle", Parameters: []ParameterDef{
		{ID: 1, Name: "Number of CPUs", Values: "1, 2, 4, 8, 16, 32, 2147483647 (unlimited)"},
		{ID: 2, Name: "Service Package", Values: "FC (FortiCare), UTP, ENT, ATP"},
		{ID: 10, Name: "Number of VDOMs", Values: "0 - 500"},
		{ID: 43, Name: "FortiGuard Services", Values: "FGTAVDB, FGTFAIS, FGTISSS, FGTDLDB, FGTFGSA, FGTFCSS"},
		{ID: 44, Name: "Cloud Services", Values: "FGTFAMS, FGTSWNM, FGTSOCA, FGTFAZC, FGTSWOS, FGTFSPA"},
		{ID: 45, Name: "Support Services", Values: "FGTFCELU"},
	}},
	{ID: 2, Name: "FMG_VM", Title: "FortiManager Virtual Machine", Parameters: []ParameterDef{
		{ID: 30, Name: "Number of managed devices", Values: "1 - 100000"},
		{ID: 3, Name: "Number of ADOMs", Values: "0 - 100000"},
	}},
	{ID: 3, Name: "FWB_VM", Title: "FortiWeb Virtual Machine - Service Bundle", Parameters: []ParameterDef{
		{ID: 4, Name: "Number of CPUs", Values: "1, 2, 4, 8, 16"},
		{ID: 5, Name: "Service Package", Values: "FWBSTD (Standard), FWBADV (Advanced)"},
	}},
	{ID: 4, Name: "FGT_VM_LCS", Title: "FortiGate Virtual Machine - A La Carte Services", Parameters: []ParameterDef{
		{ID: 6, Name: "Number of CPUs", Values: "1 - 96"},
		{ID: 7, Name: "FortiGuard Services", Values: "IPS, AVDB, FGSA, DLDB, FAIS, FURLDNS"},
		{ID: 8, Name: "Support Services", Values: "FC247, ASET"},
		{ID: 11, Name: "Number of VDOMs", Values: "0 - 500"},
		{ID: 12, Name: "Cloud Services", Values: "FAMS, SWNM, AFAC, FAZC"},
	}},
	{ID: 5, Name: "FC_EMS_OP", Title: "FortiClient EMS On-Prem", Parameters: []ParameterDef{
		{ID: 13, Name: "ZTNA/VPN", Values: "0 - 25000"},
		{ID: 14, Name: "EPP/ATP + ZTNA/VPN", Values: "0 - 25000"},
		{ID: 15, Name: "Chromebook", Values: "0 - 25000"},
		{ID: 16, Name: "Support Services", Values: "FCTFC247"},
	}},
	{ID: 7, Name: "FAZ_VM", Title: "FortiAnalyzer Virtual Machine", Parameters: []ParameterDef{
		{ID: 21, Name: "Daily Storage (GB)", Values: "5 - 8300"},
		{ID: 22, Name: "Number of ADOMs", Values: "0 - 1200"},
		{ID: 23, Name: "Support Services", Values: "FAZFC247"},
	}},
	{ID: 8, Name: "FPC_VM", Title: "FortiPortal Virtual Machine", Parameters: []ParameterDef{
		{ID: 24, Name: "Number of managed devices", Values: "0 - 100000"},
	}},
	{ID: 9, Name: "FAD_VM", Title: "FortiADC Virtual Machine", Parameters: []ParameterDef{
		{ID: 25, Name: "Number of CPUs", Values: "1, 2, 4, 8, 16, 32"},
		{ID: 26, Name: "Service Package", Values: "FDVSTD, FDVADV, FDVFC247"},
	}},
	{ID: 101, Name: "FGT_HW", Title: "FortiGate Hardware", Parameters: []ParameterDef{
		{ID: 27, Name: "Device Model", Values: "FGT40F, FGT60F, FGT70F, FGT80F, FG100F, ..."},
		{ID: 28, Name: "Service Package", Values: "FGTFC247, FGTENTP, FGTATP, FGTUTP"},
		{ID: 29, Name: "Addons", Values: "NONE, FGTFGSA, FGTFAMS, FGTSOCA"},
	}},
	{ID: 102, Name: "FAP_HW", Title: "FortiAP Hardware", Parameters: []ParameterDef{
		{ID: 55, Name: "Device Model", Values: "FP23JF, FP221E, FP231F, FP431F, ..."},
		{ID: 56, Name: "Service Package", Values: "FAPHWFC247, FAPHWFCEL"},
		{ID: 57, Name: "Addons", Values: "NONE, FAPHWFSFG"},
	}},
	{ID: 103, Name: "FSW_HW", Title: "FortiSwitch Hardware", Parameters: []ParameterDef{
		{ID: 53, Name: "Device Model", Values: "S108FF, S124FF, S148FF, ..."},
		{ID: 54, Name: "Service Package", Values: "FSWHWFC247, FSWHWFCEL"},
	}},
}

// ProductTypes returns a copy of the product type table.
func ProductTypes() []ProductType {
	out := make([]ProductType, 0, len(productTypes))
	for _, pt := range productTypes {
		out = append(out, pt.clone())
	}
	return out
}

func (pt ProductType) clone() ProductType {
	pt.Parameters = append([]ParameterDef(nil), pt.Parameters...)
	return pt
}

// LookupProductType finds a product type by numeric ID ("1") or by name,
// ignoring case ("fgt_vm_bundle").
func LookupProductType(key string) (ProductType, bool) {
	key = strings.TrimSpace(key)
	if id, err := strconv.Atoi(key); err == nil {
		for _, pt := range productTypes {
			if pt.ID == id {
				return pt.clone(), true
			}
		}
		return ProductType{}, false
	}

	fold := cases.Fold()
	want := fold.String(key)
	for _, pt := range productTypes {
		if fold.String(pt.Name) == want {
			return pt.clone(), true
		}
	}
	return ProductType{}, false
}

// ParameterName returns the documented name of a parameter ID, or "" when
// the ID is not in the table.
func ParameterName(id int) string {
	for _, pt := range productTypes {
		for _, p := range pt.Parameters {
			if p.ID == id {
				return p.Name
			}
		}
	}
	return ""
}
