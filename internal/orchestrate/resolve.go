package orchestrate

import (
	"fmt"
	"sort"
	"strings"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
)

// credentialResourceType marks the placeholder resource that CloudFormation
// cannot create itself: certificate key material only exists in the response
// of iot:CreateKeysAndCertificate.
const credentialResourceType = "Custom::IoTKeysAndCertificate"

// CredentialRef identifies one attribute of a credential placeholder that
// the rest of the template references.
type CredentialRef struct {
	LogicalName string
	Attribute   string
}

// Resolved is a template with every credential placeholder replaced by
// string parameters, one per referenced attribute. The private key
// parameter is NoEcho so CloudFormation never displays it.
type Resolved struct {
	Template *ruuvitag.Template

	// Params maps parameter name to the credential attribute it carries.
	Params map[string]CredentialRef
}

// ResolveCredentials rewrites the template for submission to CloudFormation:
// credential placeholder resources are removed, their Fn::GetAtt references
// become Ref to injected parameters, and DependsOn mentions are dropped.
// The input template is not modified.
func ResolveCredentials(t *ruuvitag.Template) (*Resolved, error) {
	placeholders := make(map[string]bool)
	for name, def := range t.Resources {
		if def.Type == credentialResourceType {
			placeholders[name] = true
		}
	}

	resolved := &Resolved{
		Template: &ruuvitag.Template{
			AWSTemplateFormatVersion: t.AWSTemplateFormatVersion,
			Description:              t.Description,
			Parameters:               make(map[string]ruuvitag.Parameter),
			Resources:                make(map[string]ruuvitag.ResourceDef),
			Outputs:                  t.Outputs,
		},
		Params: make(map[string]CredentialRef),
	}
	for name, param := range t.Parameters {
		resolved.Template.Parameters[name] = param
	}

	for name, def := range t.Resources {
		if placeholders[name] {
			continue
		}

		props, err := resolved.substitute(def.Properties, placeholders)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}

		var dependsOn []string
		for _, dep := range def.DependsOn {
			if !placeholders[dep] {
				dependsOn = append(dependsOn, dep)
			}
		}

		resolved.Template.Resources[name] = ruuvitag.ResourceDef{
			Type:       def.Type,
			Properties: props.(map[string]any),
			DependsOn:  dependsOn,
		}
	}

	if len(resolved.Template.Parameters) == 0 {
		resolved.Template.Parameters = nil
	}

	return resolved, nil
}

// ParameterNames returns the injected parameter names in sorted order.
func (r *Resolved) ParameterNames() []string {
	names := make([]string, 0, len(r.Params))
	for name := range r.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// substitute walks a property tree replacing references to credential
// placeholders with parameter refs, registering each parameter as it is
// first seen.
func (r *Resolved) substitute(value any, placeholders map[string]bool) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if att, ok := v["Fn::GetAtt"]; ok && len(v) == 1 {
			if name, attribute, ok := splitGetAtt(att); ok && placeholders[name] {
				return map[string]any{"Ref": r.register(name, attribute)}, nil
			}
		}
		if ref, ok := v["Ref"].(string); ok && len(v) == 1 && placeholders[ref] {
			// Ref on the placeholder resolves to its physical id.
			return map[string]any{"Ref": r.register(ref, "CertificateId")}, nil
		}

		result := make(map[string]any, len(v))
		for key, val := range v {
			sub, err := r.substitute(val, placeholders)
			if err != nil {
				return nil, err
			}
			result[key] = sub
		}
		return result, nil

	case []any:
		result := make([]any, len(v))
		for i, elem := range v {
			sub, err := r.substitute(elem, placeholders)
			if err != nil {
				return nil, err
			}
			result[i] = sub
		}
		return result, nil

	default:
		return value, nil
	}
}

// register adds a parameter for the given placeholder attribute and returns
// its name. Key material parameters are NoEcho.
func (r *Resolved) register(logicalName, attribute string) string {
	name := logicalName + attribute
	if _, exists := r.Params[name]; exists {
		return name
	}

	r.Params[name] = CredentialRef{LogicalName: logicalName, Attribute: attribute}
	r.Template.Parameters[name] = ruuvitag.Parameter{
		Type:        "String",
		Description: fmt.Sprintf("%s of the pre-provisioned device certificate", attribute),
		NoEcho:      attribute == "PrivateKey" || attribute == "CertificatePem",
	}
	return name
}

func splitGetAtt(att any) (name, attribute string, ok bool) {
	switch att := att.(type) {
	case []any:
		if len(att) == 2 {
			name, nameOK := att[0].(string)
			attribute, attrOK := att[1].(string)
			if nameOK && attrOK {
				return name, attribute, true
			}
		}
	case string:
		if name, attribute, found := strings.Cut(att, "."); found {
			return name, attribute, true
		}
	}
	return "", "", false
}
