package frontend

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/youtNa/doris/meta"
)

// Hand-rolled thrift codecs for the metadata service. Field ids are part
// of the wire contract with the frontend and must not be renumbered.

func writeField(ctx context.Context, oprot thrift.TProtocol, name string, typeID thrift.TType, id int16, write func() error) error {
	if err := oprot.WriteFieldBegin(ctx, name, typeID, id); err != nil {
		return fmt.Errorf("write field begin %s: %w", name, err)
	}

	if err := write(); err != nil {
		return fmt.Errorf("write field %s: %w", name, err)
	}

	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return fmt.Errorf("write field end %s: %w", name, err)
	}

	return nil
}

type wireSnapshotsParams struct {
	SnapshotID int64 // field 1
}

func (p *wireSnapshotsParams) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TSnapshotsParams"); err != nil {
		return err
	}

	err := writeField(ctx, oprot, "snapshotId", thrift.I64, 1, func() error {
		return oprot.WriteI64(ctx, p.SnapshotID)
	})
	if err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireSnapshotsParams) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.I64:
			if p.SnapshotID, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type wireFetchRequest struct {
	Cluster   string               // field 1
	Kind      int32                // field 2
	Catalog   string               // field 3
	Database  string               // field 4
	Table     string               // field 5
	Snapshots *wireSnapshotsParams // field 6, optional
}

func (p *wireFetchRequest) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TFetchTableMetadataRequest"); err != nil {
		return err
	}

	strings := []struct {
		name  string
		id    int16
		value string
	}{
		{"cluster", 1, p.Cluster},
		{"catalog", 3, p.Catalog},
		{"database", 4, p.Database},
		{"table", 5, p.Table},
	}

	for _, f := range strings {
		f := f

		err := writeField(ctx, oprot, f.name, thrift.STRING, f.id, func() error {
			return oprot.WriteString(ctx, f.value)
		})
		if err != nil {
			return err
		}
	}

	err := writeField(ctx, oprot, "kind", thrift.I32, 2, func() error {
		return oprot.WriteI32(ctx, p.Kind)
	})
	if err != nil {
		return err
	}

	if p.Snapshots != nil {
		err := writeField(ctx, oprot, "snapshotsParams", thrift.STRUCT, 6, func() error {
			return p.Snapshots.Write(ctx, oprot)
		})
		if err != nil {
			return err
		}
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireFetchRequest) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.STRING:
			if p.Cluster, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case id == 2 && typeID == thrift.I32:
			if p.Kind, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case id == 3 && typeID == thrift.STRING:
			if p.Catalog, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case id == 4 && typeID == thrift.STRING:
			if p.Database, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case id == 5 && typeID == thrift.STRING:
			if p.Table, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case id == 6 && typeID == thrift.STRUCT:
			p.Snapshots = &wireSnapshotsParams{}
			if err := p.Snapshots.Read(ctx, iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type wireStatus struct {
	Code    int32  // field 1
	Message string // field 2
}

func (p *wireStatus) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TStatus"); err != nil {
		return err
	}

	err := writeField(ctx, oprot, "code", thrift.I32, 1, func() error {
		return oprot.WriteI32(ctx, p.Code)
	})
	if err != nil {
		return err
	}

	err = writeField(ctx, oprot, "message", thrift.STRING, 2, func() error {
		return oprot.WriteString(ctx, p.Message)
	})
	if err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireStatus) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.I32:
			if p.Code, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case id == 2 && typeID == thrift.STRING:
			if p.Message, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type wireCell struct {
	LongVal *int64  // field 1, optional
	TextVal *string // field 2, optional
}

func (p *wireCell) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TCell"); err != nil {
		return err
	}

	if p.LongVal != nil {
		err := writeField(ctx, oprot, "longVal", thrift.I64, 1, func() error {
			return oprot.WriteI64(ctx, *p.LongVal)
		})
		if err != nil {
			return err
		}
	}

	if p.TextVal != nil {
		err := writeField(ctx, oprot, "textVal", thrift.STRING, 2, func() error {
			return oprot.WriteString(ctx, *p.TextVal)
		})
		if err != nil {
			return err
		}
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireCell) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.I64:
			v, err := iprot.ReadI64(ctx)
			if err != nil {
				return err
			}

			p.LongVal = &v
		case id == 2 && typeID == thrift.STRING:
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return err
			}

			p.TextVal = &v
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type wireRow struct {
	Cells []wireCell // field 1
}

func (p *wireRow) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TRow"); err != nil {
		return err
	}

	err := writeField(ctx, oprot, "cells", thrift.LIST, 1, func() error {
		if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(p.Cells)); err != nil {
			return err
		}

		for i := range p.Cells {
			if err := p.Cells[i].Write(ctx, oprot); err != nil {
				return err
			}
		}

		return oprot.WriteListEnd(ctx)
	})
	if err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireRow) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.LIST:
			_, size, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}

			p.Cells = make([]wireCell, size)
			for i := 0; i < size; i++ {
				if err := p.Cells[i].Read(ctx, iprot); err != nil {
					return err
				}
			}

			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type wireFetchResult struct {
	Status wireStatus // field 1
	Rows   []wireRow  // field 2
}

func (p *wireFetchResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "TFetchTableMetadataResult"); err != nil {
		return err
	}

	err := writeField(ctx, oprot, "status", thrift.STRUCT, 1, func() error {
		return p.Status.Write(ctx, oprot)
	})
	if err != nil {
		return err
	}

	err = writeField(ctx, oprot, "rows", thrift.LIST, 2, func() error {
		if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(p.Rows)); err != nil {
			return err
		}

		for i := range p.Rows {
			if err := p.Rows[i].Write(ctx, oprot); err != nil {
				return err
			}
		}

		return oprot.WriteListEnd(ctx)
	})
	if err != nil {
		return err
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *wireFetchResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		switch {
		case id == 1 && typeID == thrift.STRUCT:
			if err := p.Status.Read(ctx, iprot); err != nil {
				return err
			}
		case id == 2 && typeID == thrift.LIST:
			_, size, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}

			p.Rows = make([]wireRow, size)
			for i := 0; i < size; i++ {
				if err := p.Rows[i].Read(ctx, iprot); err != nil {
					return err
				}
			}

			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

// fetchTableMetadataArgs and fetchTableMetadataResult frame the RPC call
// itself.

type fetchTableMetadataArgs struct {
	Request *wireFetchRequest // field 1
}

func (p *fetchTableMetadataArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "fetchTableMetadata_args"); err != nil {
		return err
	}

	if p.Request != nil {
		err := writeField(ctx, oprot, "request", thrift.STRUCT, 1, func() error {
			return p.Request.Write(ctx, oprot)
		})
		if err != nil {
			return err
		}
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *fetchTableMetadataArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		if id == 1 && typeID == thrift.STRUCT {
			p.Request = &wireFetchRequest{}
			if err := p.Request.Read(ctx, iprot); err != nil {
				return err
			}
		} else {
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

type fetchTableMetadataResult struct {
	Success *wireFetchResult // field 0
}

func (p *fetchTableMetadataResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "fetchTableMetadata_result"); err != nil {
		return err
	}

	if p.Success != nil {
		err := writeField(ctx, oprot, "success", thrift.STRUCT, 0, func() error {
			return p.Success.Write(ctx, oprot)
		})
		if err != nil {
			return err
		}
	}

	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}

	return oprot.WriteStructEnd(ctx)
}

func (p *fetchTableMetadataResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}

	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}

		if typeID == thrift.STOP {
			break
		}

		if id == 0 && typeID == thrift.STRUCT {
			p.Success = &wireFetchResult{}
			if err := p.Success.Read(ctx, iprot); err != nil {
				return err
			}
		} else {
			if err := iprot.Skip(ctx, typeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd(ctx)
}

func requestToWire(request *meta.FetchRequest) *wireFetchRequest {
	out := &wireFetchRequest{
		Cluster:  request.Cluster,
		Kind:     int32(request.Kind),
		Catalog:  request.Catalog,
		Database: request.Database,
		Table:    request.Table,
	}

	if request.Snapshots != nil {
		out.Snapshots = &wireSnapshotsParams{SnapshotID: request.Snapshots.SnapshotID}
	}

	return out
}

func requestFromWire(request *wireFetchRequest) *meta.FetchRequest {
	out := &meta.FetchRequest{
		Cluster:  request.Cluster,
		Kind:     meta.Kind(request.Kind),
		Catalog:  request.Catalog,
		Database: request.Database,
		Table:    request.Table,
	}

	if request.Snapshots != nil {
		out.Snapshots = &meta.SnapshotsParams{SnapshotID: request.Snapshots.SnapshotID}
	}

	return out
}

func resultToWire(result *meta.FetchResult) *wireFetchResult {
	out := &wireFetchResult{
		Status: wireStatus{Code: int32(result.Status.Code), Message: result.Status.Message},
		Rows:   make([]wireRow, 0, len(result.Rows)),
	}

	for _, row := range result.Rows {
		cells := make([]wireCell, 0, len(row.Values))

		// The value tag is implicit from the destination slot type, so
		// cells carry both representations.
		for _, value := range row.Values {
			value := value

			cells = append(cells, wireCell{LongVal: &value.Long, TextVal: &value.Text})
		}

		out.Rows = append(out.Rows, wireRow{Cells: cells})
	}

	return out
}

func resultFromWire(result *wireFetchResult) *meta.FetchResult {
	out := &meta.FetchResult{
		Status: meta.Status{Code: meta.StatusCode(result.Status.Code), Message: result.Status.Message},
		Rows:   make([]meta.Row, 0, len(result.Rows)),
	}

	for _, row := range result.Rows {
		values := make([]meta.Value, 0, len(row.Cells))

		for _, cell := range row.Cells {
			var value meta.Value

			if cell.LongVal != nil {
				value.Long = *cell.LongVal
			}

			if cell.TextVal != nil {
				value.Text = *cell.TextVal
			}

			values = append(values, value)
		}

		out.Rows = append(out.Rows, meta.Row{Values: values})
	}

	return out
}
