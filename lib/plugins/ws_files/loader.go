package ws_files

import (
	"fmt"

	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclServicesFile is the top-level structure of a services file:
//
//	service "billing" {
//	  label   = "Billing"
//	  url     = "https://billing.example.com/api"
//	  type    = "rest"
//	  headers = { "X-Api-Key" = "secret" }
//
//	  operation "invoices" {
//	    label  = "List invoices"
//	    method = "GET"
//	    path   = "/invoices"
//	  }
//	}
type hclServicesFile struct {
	Services []*hclService `hcl:"service,block"`
}

type hclService struct {
	Name       string            `hcl:"name,label"`
	Label      string            `hcl:"label"`
	URL        string            `hcl:"url"`
	Type       string            `hcl:"type"`
	Headers    map[string]string `hcl:"headers,optional"`
	Operations []*hclOperation   `hcl:"operation,block"`
}

type hclOperation struct {
	Name   string `hcl:"name,label"`
	Label  string `hcl:"label"`
	Method string `hcl:"method,optional"`
	Path   string `hcl:"path,optional"`
}

// LoadServicesFile parses the services declared in the HCL file at path, keyed by name.
func LoadServicesFile(path string) (map[string]service.ServiceDescription, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsedFile hclServicesFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	services := make(map[string]service.ServiceDescription, len(parsedFile.Services))
	for _, parsed := range parsedFile.Services {
		if _, ok := services[parsed.Name]; ok {
			return nil, fmt.Errorf("service %q declared twice in %s", parsed.Name, path)
		}
		services[parsed.Name] = parsed.toServiceDescription()
	}
	return services, nil
}

func (s *hclService) toServiceDescription() service.ServiceDescription {
	desc := service.ServiceDescription{
		Name:  s.Name,
		Label: s.Label,
		URL:   s.URL,
		Type:  s.Type,
	}
	if len(s.Headers) > 0 {
		headers := make(map[string]any, len(s.Headers))
		for key, value := range s.Headers {
			headers[key] = value
		}
		desc.Settings = map[string]any{"headers": headers}
	}
	if len(s.Operations) > 0 {
		desc.Operations = make(map[string]service.Operation, len(s.Operations))
		for _, op := range s.Operations {
			desc.Operations[op.Name] = service.Operation{
				Label:  op.Label,
				Method: op.Method,
				Path:   op.Path,
			}
		}
	}
	return desc
}
